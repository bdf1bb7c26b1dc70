package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/config"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/database"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"golang.org/x/sync/singleflight"
)

// Per-interaction weights used to score shoe popularity. Interaction
// types outside this table carry weight 0.
var interactionWeights = map[string]float64{
	models.InteractionView:     0.5,
	models.InteractionWishlist: 1,
	models.InteractionCart:     2,
	models.InteractionOrder:    3,
}

const (
	RebuildSuccess = "success"
	RebuildSkipped = "skipped"

	defaultTopN      = 10
	defaultBatchSize = 50
	defaultTimeout   = 60 * time.Second
)

// ShoeScore aggregates all interactions recorded against one shoe.
type ShoeScore struct {
	ShoeDetailID     int
	TotalScore       float64
	InteractionCount int
	UniqueUsers      int
}

// RebuildResult summarizes one rebuild run.
type RebuildResult struct {
	Status               string `json:"status"`
	Message              string `json:"message"`
	TotalRecommendations int    `json:"total_recommendations,omitempty"`
	TopProducts          int    `json:"top_products,omitempty"`
	TotalUsers           int    `json:"total_users,omitempty"`
}

// RecommendationStore is what the recommender needs from the database:
// read-only access to interactions and the user/shoe catalogs, plus the
// rewrite. ReplaceRecommendations must be all-or-nothing: either every
// batch lands or the previous contents survive.
type RecommendationStore interface {
	AllInteractions(ctx context.Context) ([]models.UserInteraction, error)
	AllUserIDs(ctx context.Context) ([]int, error)
	AllShoeIDs(ctx context.Context) ([]int, error)
	ReplaceRecommendations(ctx context.Context, batches [][]models.ShoeRecommendation) error
}

// Recommender rebuilds the shoe_recommendations table from interaction
// history: weighted popularity score per shoe, top-N ranking, fan-out of
// the same list to every user.
type Recommender struct {
	store     RecommendationStore
	topN      int
	batchSize int
	timeout   time.Duration

	group singleflight.Group
}

var Recommendations *Recommender

// InitializeRecommender wires the package-global recommender to the
// database using the loaded configuration.
func InitializeRecommender(db *database.DB) {
	cfg := config.AppConfig
	Recommendations = NewRecommender(NewSQLRecommendationStore(db), cfg.RecommenderTopN, cfg.RecommenderBatchSize, cfg.RecommenderTimeout)
}

func NewRecommender(store RecommendationStore, topN, batchSize int, timeout time.Duration) *Recommender {
	if topN <= 0 {
		topN = defaultTopN
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Recommender{
		store:     store,
		topN:      topN,
		batchSize: batchSize,
		timeout:   timeout,
	}
}

// Rebuild runs the full pipeline. Concurrent callers are coalesced: a
// trigger that arrives while a rebuild is in flight joins it and gets
// the same result, so two rebuilds never interleave their delete and
// insert batches.
func (r *Recommender) Rebuild(ctx context.Context) (*RebuildResult, error) {
	v, err, _ := r.group.Do("rebuild", func() (interface{}, error) {
		// Joined callers share this one run, so detach it from the
		// first trigger's request context: one client disconnecting
		// must not fail everyone. The deadline below still bounds it.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RebuildResult), nil
}

func (r *Recommender) rebuild(ctx context.Context) (*RebuildResult, error) {
	interactions, err := r.store.AllInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read interactions: %w", err)
	}
	log.Printf("Recommender: %d interactions fetched", len(interactions))

	if len(interactions) == 0 {
		return skipped("No interaction data available for training"), nil
	}

	scores, seen := aggregateScores(interactions)
	if len(seen) == 0 {
		return skipped("No valid interaction data after cleaning"), nil
	}

	topShoes := rankTop(scores, seen, r.topN)
	if len(topShoes) == 0 {
		return skipped("No products with interactions found"), nil
	}
	log.Printf("Recommender: %d shoes scored, top %d selected", len(seen), len(topShoes))

	userIDs, err := r.store.AllUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if len(userIDs) == 0 {
		return skipped("No users found in database"), nil
	}

	shoeIDs, err := r.store.AllShoeIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read shoes: %w", err)
	}

	// Interactions may reference shoes deleted since; never write a
	// recommendation pointing at a missing shoe.
	liveShoes := make(map[int]struct{}, len(shoeIDs))
	for _, id := range shoeIDs {
		liveShoes[id] = struct{}{}
	}
	validTop := topShoes[:0]
	for _, id := range topShoes {
		if _, ok := liveShoes[id]; ok {
			validTop = append(validTop, id)
		}
	}
	if len(validTop) == 0 {
		return skipped("No valid products found for recommendations"), nil
	}

	total, err := r.rewrite(ctx, userIDs, validTop)
	if err != nil {
		return nil, err
	}
	log.Printf("Recommender: stored %d recommendations (%d users x %d shoes)", total, len(userIDs), len(validTop))

	return &RebuildResult{
		Status:               RebuildSuccess,
		Message:              fmt.Sprintf("Training completed! %d top products recommended to %d users.", len(validTop), len(userIDs)),
		TotalRecommendations: total,
		TopProducts:          len(validTop),
		TotalUsers:           len(userIDs),
	}, nil
}

// aggregateScores groups interactions by shoe, dropping rows with a
// non-positive shoe id or empty type. The returned slice holds shoe ids
// in first-seen order, which the ranker uses as its stable tie order.
func aggregateScores(interactions []models.UserInteraction) (map[int]*ShoeScore, []int) {
	scores := make(map[int]*ShoeScore)
	users := make(map[int]map[int]struct{})
	var seen []int

	for _, in := range interactions {
		if in.ShoeDetailID <= 0 || in.InteractionType == "" {
			continue
		}

		score, ok := scores[in.ShoeDetailID]
		if !ok {
			score = &ShoeScore{ShoeDetailID: in.ShoeDetailID}
			scores[in.ShoeDetailID] = score
			users[in.ShoeDetailID] = make(map[int]struct{})
			seen = append(seen, in.ShoeDetailID)
		}

		score.TotalScore += interactionWeights[in.InteractionType]
		score.InteractionCount++
		users[in.ShoeDetailID][in.UserID] = struct{}{}
		score.UniqueUsers = len(users[in.ShoeDetailID])
	}

	return scores, seen
}

// rankTop returns at most topN shoe ids ordered by total score descending.
func rankTop(scores map[int]*ShoeScore, seen []int, topN int) []int {
	ranked := make([]int, len(seen))
	copy(ranked, seen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]].TotalScore > scores[ranked[j]].TotalScore
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// rewrite replaces the table with the users x shoes cross product,
// handing the store size-bounded insert batches. The store applies the
// whole swap atomically, so a failed batch leaves the old contents in
// place.
func (r *Recommender) rewrite(ctx context.Context, userIDs, shoeIDs []int) (int, error) {
	records := make([]models.ShoeRecommendation, 0, len(userIDs)*len(shoeIDs))
	for _, userID := range userIDs {
		for _, shoeID := range shoeIDs {
			records = append(records, models.ShoeRecommendation{
				UserID:       userID,
				ShoeDetailID: shoeID,
			})
		}
	}

	batches := make([][]models.ShoeRecommendation, 0, (len(records)+r.batchSize-1)/r.batchSize)
	for start := 0; start < len(records); start += r.batchSize {
		end := start + r.batchSize
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}

	if err := r.store.ReplaceRecommendations(ctx, batches); err != nil {
		return 0, fmt.Errorf("failed to rewrite recommendations: %w", err)
	}

	return len(records), nil
}

func skipped(message string) *RebuildResult {
	return &RebuildResult{Status: RebuildSkipped, Message: message}
}
