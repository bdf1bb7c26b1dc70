package models

import (
	"time"
)

// Interaction types recorded against shoes. Anything else carries no
// weight in the popularity ranking.
const (
	InteractionView     = "view"
	InteractionWishlist = "wishlist"
	InteractionCart     = "cart"
	InteractionOrder    = "order"
)

// ValidInteractionTypes is the closed set accepted by the API.
var ValidInteractionTypes = []string{
	InteractionView,
	InteractionWishlist,
	InteractionCart,
	InteractionOrder,
}

func IsValidInteractionType(t string) bool {
	for _, v := range ValidInteractionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// UserInteraction is one shopper action against one shoe. Rows are
// append-only; the recommender reads them, nothing mutates them.
type UserInteraction struct {
	InteractionID   int       `json:"interaction_id" db:"interaction_id"`
	UserID          int       `json:"id_user" db:"id_user"`
	ShoeDetailID    int       `json:"shoe_detail_id" db:"shoe_detail_id"`
	InteractionType string    `json:"interaction_type" db:"interaction_type"`
	InteractionDate time.Time `json:"interaction_date" db:"interaction_date"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}

func (UserInteraction) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS user_interactions (
		interaction_id SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL,
		shoe_detail_id INTEGER NOT NULL,
		interaction_type TEXT NOT NULL CHECK (interaction_type IN ('view', 'wishlist', 'cart', 'order')),
		interaction_date TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_user_interactions_shoe ON user_interactions(shoe_detail_id);
	CREATE INDEX IF NOT EXISTS idx_user_interactions_user ON user_interactions(id_user);
	`
}
