package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/infrastructure/memory"
	"github.com/oksasatya/inventory-api/pkg/helpers"
)

type fakeSearcher struct {
	indexed map[string]entity.Product
	removed []string
	lastQ   string
	size    int
	err     error
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{indexed: map[string]entity.Product{}}
}

func (s *fakeSearcher) Index(_ context.Context, p *entity.Product) error {
	s.indexed[p.ID] = *p
	return s.err
}

func (s *fakeSearcher) Remove(_ context.Context, id string) error {
	s.removed = append(s.removed, id)
	return s.err
}

func (s *fakeSearcher) Search(_ context.Context, q string, size int) ([]entity.Product, error) {
	s.lastQ, s.size = q, size
	var out []entity.Product
	for _, p := range s.indexed {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, s.err
}

type fakeUploader struct {
	paths []string
	body  string
}

func (u *fakeUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.paths = append(u.paths, objectPath)
	u.body = string(b)
	return "https://cdn.example.com/" + objectPath, nil
}

func newProductService(search ProductSearcher, images ObjectUploader) *ProductService {
	return NewProductService(memory.NewProductRepository(), search, images, helpers.NewLoggerTo(io.Discard, "test"), time.Second)
}

func ptr[T any](v T) *T { return &v }

func TestProductService_CRUD(t *testing.T) {
	search := newFakeSearcher()
	svc := newProductService(search, nil)
	ctx := context.Background()

	p := &entity.Product{Name: "Widget", Price: 10, Quantity: 3}
	require.NoError(t, svc.Create(ctx, p))
	require.NotEmpty(t, p.ID)
	assert.Contains(t, search.indexed, p.ID)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	updated, err := svc.Update(ctx, p.ID, entity.ProductPatch{Price: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 12.5, search.indexed[p.ID].Price)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Equal(t, []string{p.ID}, search.removed)

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Errors(t *testing.T) {
	svc := newProductService(nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidProductID)

	err = svc.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProductNotFound)

	p := &entity.Product{Name: "Widget"}
	require.NoError(t, svc.Create(ctx, p))
	_, err = svc.Update(ctx, p.ID, entity.ProductPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = svc.SearchProducts(ctx, "w", 5)
	assert.ErrorIs(t, err, ErrSearchDisabled)

	_, err = svc.UploadImage(ctx, p.ID, strings.NewReader("x"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrUploadDisabled)
}

func TestProductService_IndexFailureIsNotFatal(t *testing.T) {
	search := newFakeSearcher()
	search.err = errors.New("es down")
	svc := newProductService(search, nil)

	p := &entity.Product{Name: "Widget"}
	require.NoError(t, svc.Create(context.Background(), p))
	require.NoError(t, svc.Delete(context.Background(), p.ID))
}

func TestProductService_CountAbovePrice(t *testing.T) {
	svc := newProductService(nil, nil)
	ctx := context.Background()
	for _, price := range []float64{5, 10, 15, 20} {
		require.NoError(t, svc.Create(ctx, &entity.Product{Name: "p", Price: price}))
	}

	n, err := svc.CountAbovePrice(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestProductService_SearchClampsSize(t *testing.T) {
	search := newFakeSearcher()
	svc := newProductService(search, nil)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, &entity.Product{Name: "Blue Widget"}))

	res, err := svc.SearchProducts(ctx, "widget", 500)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 10, search.size)
	assert.Equal(t, "widget", search.lastQ)
}

func TestProductService_UploadImage(t *testing.T) {
	up := &fakeUploader{}
	svc := newProductService(nil, up)
	ctx := context.Background()
	p := &entity.Product{Name: "Widget"}
	require.NoError(t, svc.Create(ctx, p))

	got, err := svc.UploadImage(ctx, p.ID, strings.NewReader("PNGDATA"), "Photo.PNG", "image/png")
	require.NoError(t, err)
	require.Len(t, up.paths, 1)
	assert.True(t, strings.HasPrefix(up.paths[0], "products/"+p.ID+"/"))
	assert.True(t, strings.HasSuffix(up.paths[0], ".png"))
	assert.Equal(t, "PNGDATA", up.body)
	assert.Equal(t, "https://cdn.example.com/"+up.paths[0], got.ImageURL)

	_, err = svc.UploadImage(ctx, "00000000-0000-0000-0000-000000000000", strings.NewReader("x"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Len(t, up.paths, 1)
}
