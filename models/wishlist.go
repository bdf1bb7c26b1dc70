package models

import (
	"time"
)

type WishlistItem struct {
	IDWishlist   int       `json:"id_wishlist" db:"id_wishlist"`
	UserID       int       `json:"id_user" db:"id_user"`
	ShoeDetailID int       `json:"shoe_detail_id" db:"shoe_detail_id"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
}

func (WishlistItem) TableName() string {
	return "wishlists"
}

func (WishlistItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS wishlists (
		id_wishlist SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		shoe_detail_id INTEGER NOT NULL REFERENCES shoe_details(shoe_detail_id) ON DELETE CASCADE,
		date_added TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_wishlists_id_user ON wishlists(id_user);
	`
}
