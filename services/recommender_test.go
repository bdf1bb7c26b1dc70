package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	interactions []models.UserInteraction
	users        []int
	shoes        []int

	interactionsErr error
	usersErr        error
	shoesErr        error
	replaceErr      error
	failAtBatch     int // 1-based; when > 0 that batch fails

	enterRead   chan struct{}
	releaseRead chan struct{}
	readDelay   time.Duration

	readCalls    int
	replaceCalls int
	batches      [][]models.ShoeRecommendation
	rows         []models.ShoeRecommendation
}

func (f *fakeStore) AllInteractions(ctx context.Context) ([]models.UserInteraction, error) {
	f.readCalls++
	if f.enterRead != nil {
		f.enterRead <- struct{}{}
	}
	if f.releaseRead != nil {
		select {
		case <-f.releaseRead:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.readDelay > 0 {
		select {
		case <-time.After(f.readDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.interactions, f.interactionsErr
}

func (f *fakeStore) AllUserIDs(ctx context.Context) ([]int, error) {
	return f.users, f.usersErr
}

func (f *fakeStore) AllShoeIDs(ctx context.Context) ([]int, error) {
	return f.shoes, f.shoesErr
}

// ReplaceRecommendations mirrors the SQL store's transaction: the swap
// is all-or-nothing, so on any failure the previous rows survive.
func (f *fakeStore) ReplaceRecommendations(ctx context.Context, batches [][]models.ShoeRecommendation) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}

	var staged []models.ShoeRecommendation
	for i, batch := range batches {
		if f.failAtBatch > 0 && i+1 == f.failAtBatch {
			return errors.New("batch insert failed")
		}
		staged = append(staged, batch...)
	}

	f.batches = batches
	f.rows = staged
	return nil
}

func interaction(userID, shoeID int, kind string) models.UserInteraction {
	return models.UserInteraction{
		UserID:          userID,
		ShoeDetailID:    shoeID,
		InteractionType: kind,
		InteractionDate: time.Now(),
	}
}

func TestAggregateScoresWeights(t *testing.T) {
	interactions := []models.UserInteraction{
		interaction(1, 7, models.InteractionView),
		interaction(1, 7, models.InteractionWishlist),
		interaction(2, 7, models.InteractionCart),
		interaction(3, 7, models.InteractionOrder),
		interaction(3, 7, "promo_click"), // unknown type, weight 0
	}

	scores, seen := aggregateScores(interactions)

	require.Len(t, seen, 1)
	score := scores[7]
	require.NotNil(t, score)
	assert.Equal(t, 0.5+1+2+3, score.TotalScore)
	assert.Equal(t, 5, score.InteractionCount)
	assert.Equal(t, 3, score.UniqueUsers)
}

func TestAggregateScoresDropsInvalidRows(t *testing.T) {
	interactions := []models.UserInteraction{
		interaction(1, 0, models.InteractionView),
		interaction(1, -3, models.InteractionOrder),
		interaction(1, 5, ""),
		interaction(2, 5, models.InteractionView),
	}

	scores, seen := aggregateScores(interactions)

	require.Equal(t, []int{5}, seen)
	assert.Equal(t, 0.5, scores[5].TotalScore)
	assert.Equal(t, 1, scores[5].InteractionCount)
}

func TestRankTopOrdersByScoreDescending(t *testing.T) {
	interactions := []models.UserInteraction{
		interaction(1, 1, models.InteractionView),  // 0.5
		interaction(1, 2, models.InteractionOrder), // 3
		interaction(1, 3, models.InteractionCart),  // 2
	}

	scores, seen := aggregateScores(interactions)
	top := rankTop(scores, seen, 10)

	assert.Equal(t, []int{2, 3, 1}, top)
}

func TestRankTopCapsAtTopN(t *testing.T) {
	var interactions []models.UserInteraction
	for shoe := 1; shoe <= 15; shoe++ {
		// shoe N gets N order events, so higher ids score higher
		for i := 0; i < shoe; i++ {
			interactions = append(interactions, interaction(i+1, shoe, models.InteractionOrder))
		}
	}

	scores, seen := aggregateScores(interactions)
	top := rankTop(scores, seen, 10)

	require.Len(t, top, 10)
	assert.Equal(t, []int{15, 14, 13, 12, 11, 10, 9, 8, 7, 6}, top)
}

func TestRebuildSkipsOnEmptyInteractions(t *testing.T) {
	store := &fakeStore{}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSkipped, result.Status)
	assert.Equal(t, "No interaction data available for training", result.Message)
	assert.Zero(t, store.replaceCalls, "no writes on skip")
}

func TestRebuildSkipsWhenAllRowsInvalid(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 0, models.InteractionView),
			interaction(1, 2, ""),
		},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSkipped, result.Status)
	assert.Equal(t, "No valid interaction data after cleaning", result.Message)
	assert.Zero(t, store.replaceCalls)
}

func TestRebuildSkipsWithoutUsers(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 7, models.InteractionOrder)},
		shoes:        []int{7},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSkipped, result.Status)
	assert.Equal(t, "No users found in database", result.Message)
	assert.Zero(t, store.replaceCalls)
}

func TestRebuildExcludesDeletedShoes(t *testing.T) {
	// Shoe 99 ranks first but was deleted from the catalog
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 99, models.InteractionOrder),
			interaction(2, 99, models.InteractionOrder),
			interaction(1, 7, models.InteractionView),
		},
		users: []int{1, 2},
		shoes: []int{7},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSuccess, result.Status)
	assert.Equal(t, 1, result.TopProducts)
	for _, row := range store.rows {
		assert.Equal(t, 7, row.ShoeDetailID)
	}
}

func TestRebuildSkipsWhenAllTopShoesDeleted(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 99, models.InteractionOrder)},
		users:        []int{1},
		shoes:        []int{7},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSkipped, result.Status)
	assert.Equal(t, "No valid products found for recommendations", result.Message)
	assert.Zero(t, store.replaceCalls)
}

func TestRebuildFansOutCrossProduct(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 7, models.InteractionOrder),
			interaction(2, 8, models.InteractionCart),
		},
		users: []int{1, 2, 3},
		shoes: []int{7, 8},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RebuildSuccess, result.Status)
	assert.Equal(t, 6, result.TotalRecommendations)
	assert.Equal(t, 2, result.TopProducts)
	assert.Equal(t, 3, result.TotalUsers)
	assert.Equal(t, "Training completed! 2 top products recommended to 3 users.", result.Message)

	require.Equal(t, 1, store.replaceCalls)
	require.Len(t, store.rows, 6)

	// Every (user, shoe) pair appears exactly once
	pairs := make(map[[2]int]int)
	for _, row := range store.rows {
		pairs[[2]int{row.UserID, row.ShoeDetailID}]++
	}
	for _, user := range store.users {
		for _, shoe := range []int{7, 8} {
			assert.Equal(t, 1, pairs[[2]int{user, shoe}])
		}
	}
}

func TestRebuildBatchesInserts(t *testing.T) {
	users := make([]int, 30)
	for i := range users {
		users[i] = i + 1
	}
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 7, models.InteractionOrder),
			interaction(1, 8, models.InteractionOrder),
		},
		users: users,
		shoes: []int{7, 8},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	result, err := r.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 60, result.TotalRecommendations)
	require.Len(t, store.batches, 2)
	assert.Len(t, store.batches[0], 50)
	assert.Len(t, store.batches[1], 10)
}

func TestRebuildIsIdempotent(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 7, models.InteractionOrder),
			interaction(2, 8, models.InteractionView),
		},
		users: []int{1, 2},
		shoes: []int{7, 8},
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	first, err := r.Rebuild(context.Background())
	require.NoError(t, err)
	firstRows := append([]models.ShoeRecommendation(nil), store.rows...)

	second, err := r.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstRows, store.rows)
}

func TestRebuildPropagatesReadErrors(t *testing.T) {
	store := &fakeStore{interactionsErr: errors.New("connection refused")}
	r := NewRecommender(store, 10, 50, time.Minute)

	_, err := r.Rebuild(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read interactions")
}

func TestRebuildPropagatesWriteErrors(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 7, models.InteractionOrder)},
		users:        []int{1},
		shoes:        []int{7},
		replaceErr:   errors.New("timeout"),
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	_, err := r.Rebuild(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to rewrite recommendations")
}

func TestRebuildKeepsOldRowsWhenRewriteFails(t *testing.T) {
	previous := []models.ShoeRecommendation{
		{UserID: 1, ShoeDetailID: 3},
		{UserID: 2, ShoeDetailID: 3},
	}
	users := make([]int, 30)
	for i := range users {
		users[i] = i + 1
	}
	store := &fakeStore{
		interactions: []models.UserInteraction{
			interaction(1, 7, models.InteractionOrder),
			interaction(1, 8, models.InteractionOrder),
		},
		users:       users,
		shoes:       []int{7, 8},
		failAtBatch: 2,
		rows:        append([]models.ShoeRecommendation(nil), previous...),
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	_, err := r.Rebuild(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to rewrite recommendations")
	// The 60-row rewrite fails on its second batch; nothing from the
	// first batch may stick and the old rows must still be there.
	assert.Equal(t, previous, store.rows)
}

func TestRebuildCoalescesConcurrentTriggers(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 7, models.InteractionOrder)},
		users:        []int{1, 2},
		shoes:        []int{7},
		enterRead:    make(chan struct{}, 2),
		releaseRead:  make(chan struct{}),
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	var wg sync.WaitGroup
	results := make([]*RebuildResult, 2)
	errs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Rebuild(context.Background())
		}(i)
	}

	// One trigger is inside the store read; give the other a moment to
	// join the in-flight run, then let the rebuild finish.
	<-store.enterRead
	time.Sleep(20 * time.Millisecond)
	close(store.releaseRead)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, 1, store.readCalls, "second trigger must join, not restart")
	assert.Equal(t, 1, store.replaceCalls, "table rewritten exactly once")
}

func TestRebuildFailsWhenDeadlineExceeded(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 7, models.InteractionOrder)},
		users:        []int{1},
		shoes:        []int{7},
		readDelay:    time.Second,
	}
	r := NewRecommender(store, 10, 50, 5*time.Millisecond)

	_, err := r.Rebuild(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, store.replaceCalls)
}

func TestRebuildSurvivesTriggerCancellation(t *testing.T) {
	store := &fakeStore{
		interactions: []models.UserInteraction{interaction(1, 7, models.InteractionOrder)},
		users:        []int{1},
		shoes:        []int{7},
		enterRead:    make(chan struct{}, 1),
		releaseRead:  make(chan struct{}),
	}
	r := NewRecommender(store, 10, 50, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var result *RebuildResult
	var err error
	go func() {
		defer close(done)
		result, err = r.Rebuild(ctx)
	}()

	// The triggering client disconnects mid-run; the rebuild other
	// callers may have joined keeps going.
	<-store.enterRead
	cancel()
	close(store.releaseRead)
	<-done

	require.NoError(t, err)
	assert.Equal(t, RebuildSuccess, result.Status)
	assert.Equal(t, 1, store.replaceCalls)
}

func TestNewRecommenderDefaults(t *testing.T) {
	r := NewRecommender(&fakeStore{}, 0, 0, 0)

	assert.Equal(t, defaultTopN, r.topN)
	assert.Equal(t, defaultBatchSize, r.batchSize)
	assert.Equal(t, defaultTimeout, r.timeout)
}
