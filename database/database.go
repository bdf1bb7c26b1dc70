package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

var Database *DB

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Database = &DB{db}
	return Database, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables() error {
	// Order matters: tables are created respecting foreign key dependencies
	tables := []interface{}{
		models.User{},
		models.ShoeCategory{},
		models.ShoeDetail{},
		models.CartItem{},
		models.WishlistItem{},
		models.Order{},
		models.Payment{},
		models.UserInteraction{},
		models.ShoeRecommendation{},
	}

	for _, model := range tables {
		tableModel, ok := model.(interface {
			TableName() string
			CreateTableSQL() string
		})
		if !ok {
			continue
		}

		log.Printf("Creating table: %s", tableModel.TableName())
		if _, err := db.Exec(tableModel.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", tableModel.TableName(), err)
		}
	}

	if err := db.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("All tables created successfully!")
	return nil
}

// runMigrations handles schema updates for existing tables
func (db *DB) runMigrations() error {
	migrations := []string{
		// Shoe images were added after the initial schema
		`ALTER TABLE shoe_details ADD COLUMN IF NOT EXISTS image_url TEXT;`,

		// Older databases may predate the role and contact columns
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS role TEXT DEFAULT 'User';`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS address TEXT DEFAULT '';`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS phone TEXT DEFAULT '';`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
