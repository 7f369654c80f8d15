package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
)

// Errors every store implementation maps its driver errors onto.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create assigns ID and persists u. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
