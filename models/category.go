package models

import (
	"time"
)

type ShoeCategory struct {
	CategoryID   int       `json:"category_id" db:"category_id"`
	CategoryName string    `json:"category_name" db:"category_name"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

func (ShoeCategory) TableName() string {
	return "shoe_categories"
}

func (ShoeCategory) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS shoe_categories (
		category_id SERIAL PRIMARY KEY,
		category_name TEXT NOT NULL,
		date_added TIMESTAMP WITH TIME ZONE DEFAULT now(),
		last_updated TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
