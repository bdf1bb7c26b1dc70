package models

import (
	"time"
)

type User struct {
	UserID      int       `json:"user_id" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Role        string    `json:"role" db:"role"` // User, Admin
	Address     string    `json:"address" db:"address"`
	Phone       string    `json:"phone" db:"phone"`
	DateAdded   time.Time `json:"date_added" db:"date_added"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

func (User) TableName() string {
	return "users"
}

func (User) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT DEFAULT '',
		last_name TEXT DEFAULT '',
		role TEXT DEFAULT 'User',
		address TEXT DEFAULT '',
		phone TEXT DEFAULT '',
		date_added TIMESTAMP WITH TIME ZONE DEFAULT now(),
		last_updated TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
