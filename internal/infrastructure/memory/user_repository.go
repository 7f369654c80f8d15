package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
)

// UserRepository keeps users in process memory. Used by tests and STORE_DRIVER=memory.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]entity.User)}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicate
	}
	u.ID = uuid.NewString()
	r.byEmail[key] = *u
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
