package models

import (
	"time"
)

type Order struct {
	OrderID      int       `json:"order_id" db:"order_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	ShoeDetailID int       `json:"shoe_detail_id" db:"shoe_detail_id"`
	OrderStatus  string    `json:"order_status" db:"order_status"` // pending, processing, shipped, delivered, cancelled
	OrderDate    string    `json:"order_date" db:"order_date"`     // YYYY-MM-DD
	Amount       float64   `json:"amount" db:"amount"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

// OrderWithShoe is an order joined with the shoe name for history views.
type OrderWithShoe struct {
	Order
	ShoeName string `json:"shoe_name"`
}

func (Order) TableName() string {
	return "orders"
}

func (Order) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		shoe_detail_id INTEGER NOT NULL REFERENCES shoe_details(shoe_detail_id),
		order_status TEXT NOT NULL CHECK (order_status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled')),
		order_date DATE NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		last_updated TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	`
}
