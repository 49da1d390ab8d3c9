package domain

import "time"

// User represents an identity record keyed by email. OAuth-only accounts
// carry a placeholder password hash that can never pass local verification.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
