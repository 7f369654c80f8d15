package entity

import (
	"time"
)

// User is an identity record owned by the store.
// PasswordHash holds the bcrypt hash; the plaintext is never stored.
//
// Email is unique per account; the store enforces it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
