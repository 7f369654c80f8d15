package modules

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/inventory-api/internal/interface/http"
	"github.com/oksasatya/inventory-api/internal/interface/middleware"
)

type ProductModule struct {
	Handler *handlers.ProductHandler
	Redis   *redis.Client
}

func NewProductModule(h *handlers.ProductHandler, rdb *redis.Client) *ProductModule {
	return &ProductModule{Handler: h, Redis: rdb}
}

func (m *ProductModule) Register(r Routes) {
	writeLimiter := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyBySubject(), nil)

	r.Handle(http.MethodGet, "/products", m.Handler.List)
	r.Handle(http.MethodGet, "/products/search", m.Handler.Search)
	r.Handle(http.MethodGet, "/products/count/:price", m.Handler.CountAbovePrice)
	r.Handle(http.MethodGet, "/products/:id", m.Handler.Get)

	r.Handle(http.MethodPost, "/products", writeLimiter, m.Handler.Create)
	r.Handle(http.MethodPatch, "/products/:id", writeLimiter, m.Handler.Update)
	r.Handle(http.MethodDelete, "/products/:id", writeLimiter, m.Handler.Delete)
	r.Handle(http.MethodPost, "/products/:id/image", writeLimiter, m.Handler.UploadImage)
}
