package domain

import "time"

// User represents a registered customer account.
// The bcrypt password hash never leaves the backend, hence `json:"-"`.
type User struct {
	ID           int64     `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
