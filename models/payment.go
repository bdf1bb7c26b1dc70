package models

type Payment struct {
	PaymentID     int    `json:"payment_id" db:"payment_id"`
	OrderID       int    `json:"order_id" db:"order_id"`
	PaymentMethod string `json:"payment_method" db:"payment_method"`
	PaymentStatus string `json:"payment_status" db:"payment_status"`
	PaymentDate   string `json:"payment_date" db:"payment_date"` // YYYY-MM-DD
}

func (Payment) TableName() string {
	return "payments"
}

func (Payment) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS payments (
		payment_id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL UNIQUE REFERENCES orders(order_id) ON DELETE CASCADE,
		payment_method TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		payment_date DATE NOT NULL
	);`
}
