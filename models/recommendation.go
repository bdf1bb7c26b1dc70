package models

// ShoeRecommendation is one user-sees-shoe row. The whole table is
// dropped and regenerated by the recommendation rebuild.
type ShoeRecommendation struct {
	IDShoeRecommendation int `json:"id_shoe_recommendation" db:"id_shoe_recommendation"`
	UserID               int `json:"id_user" db:"id_user"`
	ShoeDetailID         int `json:"shoe_detail_id" db:"shoe_detail_id"`
}

// ShoeRecommendationWithShoe is a recommendation joined with shoe
// details, the shape the storefront feed renders.
type ShoeRecommendationWithShoe struct {
	ShoeRecommendation
	ShoeName  string  `json:"shoe_name"`
	ShoePrice float64 `json:"shoe_price"`
	ShoeSize  string  `json:"shoe_size"`
	Stock     int     `json:"stock"`
	ImageURL  *string `json:"image_url"`
}

func (ShoeRecommendation) TableName() string {
	return "shoe_recommendations"
}

func (ShoeRecommendation) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS shoe_recommendations (
		id_shoe_recommendation SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL,
		shoe_detail_id INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shoe_recommendations_user ON shoe_recommendations(id_user);
	`
}
