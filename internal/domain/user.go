package domain

import "time"

// User represents a persisted user record. Every other entity is scoped to a
// user id; ownership is the whole authorization model.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
