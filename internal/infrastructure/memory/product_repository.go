package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
)

type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[string]entity.Product)}
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", repository.ErrInvalidID
	}
	return parsed.String(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	r.items[p.ID] = *p
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.items[key] = p
	return &p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := parseID(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, key)
	return nil
}

func (r *ProductRepository) CountPriceAbove(ctx context.Context, price float64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.items {
		if p.Price > price {
			n++
		}
	}
	return n, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
