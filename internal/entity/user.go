package entity

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Admin        bool      `json:"admin" db:"is_admin"`
	Authorized   bool      `json:"authorized" db:"is_authorized"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
