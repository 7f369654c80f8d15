package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	repo "github.com/oksasatya/inventory-api/internal/domain/repository"
	"github.com/oksasatya/inventory-api/pkg/helpers"
)

// ProductSearcher mirrors products into a search index
type ProductSearcher interface {
	Index(ctx context.Context, p *entity.Product) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Product, error)
}

// ObjectUploader stores a blob and returns its public URL
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ProductService struct {
	Products     repo.ProductRepository
	Search       ProductSearcher
	Images       ObjectUploader
	Logger       *logrus.Logger
	StoreTimeout time.Duration
}

func NewProductService(products repo.ProductRepository, search ProductSearcher, images ObjectUploader, logger *logrus.Logger, storeTimeout time.Duration) *ProductService {
	return &ProductService{
		Products:     products,
		Search:       search,
		Images:       images,
		Logger:       logger,
		StoreTimeout: storeTimeout,
	}
}

func (s *ProductService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}

// mapStoreErr translates repository sentinels into service errors
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repo.ErrInvalidID):
		return ErrInvalidProductID
	default:
		return err
	}
}

func (s *ProductService) Create(ctx context.Context, p *entity.Product) error {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Products.Create(c, p); err != nil {
		helpers.LogError(s.Logger, "create product failed", err, nil)
		return fmt.Errorf("create product: %w", err)
	}
	stats.Add(statProducts, 1)
	s.index(ctx, p)
	return nil
}

func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.Products.List(c)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	p, err := s.Products.GetByID(c, id)
	return p, mapStoreErr(err)
}

func (s *ProductService) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	p, err := s.Products.Update(c, id, patch)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Products.Delete(c, id); err != nil {
		return mapStoreErr(err)
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "search remove failed", err, logrus.Fields{"product_id": id})
		}
	}
	return nil
}

// CountAbovePrice counts products strictly more expensive than price
func (s *ProductService) CountAbovePrice(ctx context.Context, price float64) (int64, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.Products.CountPriceAbove(c, price)
}

func (s *ProductService) SearchProducts(ctx context.Context, q string, size int) ([]entity.Product, error) {
	if s.Search == nil {
		return nil, ErrSearchDisabled
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Search.Search(ctx, q, size)
}

// UploadImage stores the image and points the product at it
func (s *ProductService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.Product, error) {
	if s.Images == nil {
		return nil, ErrUploadDisabled
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join("products", id, uuid.NewString()+ext)
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "upload image failed", err, logrus.Fields{"product_id": id})
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return s.Update(ctx, id, entity.ProductPatch{ImageURL: &url})
}

func (s *ProductService) index(ctx context.Context, p *entity.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, p); err != nil {
		helpers.LogWarn(s.Logger, "search index failed", err, logrus.Fields{"product_id": p.ID})
	}
}
