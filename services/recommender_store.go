package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/database"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"
)

// SQLRecommendationStore backs the recommender with the Postgres tables
// of record.
type SQLRecommendationStore struct {
	db *database.DB
}

func NewSQLRecommendationStore(db *database.DB) *SQLRecommendationStore {
	return &SQLRecommendationStore{db: db}
}

func (s *SQLRecommendationStore) AllInteractions(ctx context.Context) ([]models.UserInteraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT interaction_id, id_user, shoe_detail_id, interaction_type, interaction_date
		FROM user_interactions
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []models.UserInteraction
	for rows.Next() {
		var in models.UserInteraction
		if err := rows.Scan(&in.InteractionID, &in.UserID, &in.ShoeDetailID, &in.InteractionType, &in.InteractionDate); err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

func (s *SQLRecommendationStore) AllUserIDs(ctx context.Context) ([]int, error) {
	return s.queryIDs(ctx, `SELECT user_id FROM users`)
}

func (s *SQLRecommendationStore) AllShoeIDs(ctx context.Context) ([]int, error) {
	return s.queryIDs(ctx, `SELECT shoe_detail_id FROM shoe_details`)
}

func (s *SQLRecommendationStore) queryIDs(ctx context.Context, query string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceRecommendations swaps the table contents inside a single
// transaction: delete-all, then one multi-row INSERT per batch. Readers
// never observe the empty or half-written table, and a failed batch
// rolls the whole rewrite back.
func (s *SQLRecommendationStore) ReplaceRecommendations(ctx context.Context, batches [][]models.ShoeRecommendation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rewrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shoe_recommendations`); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}

	for i, batch := range batches {
		if err := insertRecommendationBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("batch %d insert failed: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func insertRecommendationBatch(ctx context.Context, tx *sql.Tx, batch []models.ShoeRecommendation) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO shoe_recommendations (id_user, shoe_detail_id) VALUES `)
	args := make([]interface{}, 0, len(batch)*2)
	for i, rec := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("($" + strconv.Itoa(i*2+1) + ", $" + strconv.Itoa(i*2+2) + ")")
		args = append(args, rec.UserID, rec.ShoeDetailID)
	}

	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}
