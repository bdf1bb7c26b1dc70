package models

import (
	"time"
)

type CartItem struct {
	IDCart       int       `json:"id_cart" db:"id_cart"`
	UserID       int       `json:"id_user" db:"id_user"`
	ShoeDetailID int       `json:"shoe_detail_id" db:"shoe_detail_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

// CartItemWithShoe is a cart row joined with the shoe it points at,
// the shape the storefront cart page renders.
type CartItemWithShoe struct {
	CartItem
	ShoeName  string  `json:"shoe_name"`
	ShoePrice float64 `json:"shoe_price"`
	ShoeSize  string  `json:"shoe_size"`
	Stock     int     `json:"stock"`
}

func (CartItem) TableName() string {
	return "carts"
}

func (CartItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS carts (
		id_cart SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		shoe_detail_id INTEGER NOT NULL REFERENCES shoe_details(shoe_detail_id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1,
		date_added TIMESTAMP WITH TIME ZONE DEFAULT now(),
		last_updated TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_carts_id_user ON carts(id_user);
	`
}
