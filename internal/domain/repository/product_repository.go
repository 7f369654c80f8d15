package repository

import (
	"context"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence.
// Identifiers the backend cannot parse yield ErrInvalidID.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	CountPriceAbove(ctx context.Context, price float64) (int64, error)
}
