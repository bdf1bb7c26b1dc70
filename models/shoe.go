package models

import (
	"time"
)

type ShoeDetail struct {
	ShoeDetailID int       `json:"shoe_detail_id" db:"shoe_detail_id"`
	CategoryID   int       `json:"category_id" db:"category_id"`
	ShoeName     string    `json:"shoe_name" db:"shoe_name"`
	ShoePrice    float64   `json:"shoe_price" db:"shoe_price"`
	ShoeSize     string    `json:"shoe_size" db:"shoe_size"`
	Stock        int       `json:"stock" db:"stock"`
	ImageURL     *string   `json:"image_url" db:"image_url"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

func (ShoeDetail) TableName() string {
	return "shoe_details"
}

func (ShoeDetail) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS shoe_details (
		shoe_detail_id SERIAL PRIMARY KEY,
		category_id INTEGER NOT NULL REFERENCES shoe_categories(category_id),
		shoe_name TEXT NOT NULL,
		shoe_price NUMERIC(12,2) NOT NULL,
		shoe_size TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		date_added TIMESTAMP WITH TIME ZONE DEFAULT now(),
		last_updated TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_shoe_details_category_id ON shoe_details(category_id);
	`
}
