package modules

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/inventory-api/internal/interface/http"
	"github.com/oksasatya/inventory-api/internal/interface/middleware"
)

// UserModule wires signup, login and the session echo.
// Public: POST /api/user, POST /api/login
// Protected: GET /api/me
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(r Routes) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)        // 10 req/min per IP
	signupLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil) // 5 req/min per IP

	r.Handle(http.MethodPost, "/user", signupLimiter, m.Handler.Register)
	r.Handle(http.MethodPost, "/login", loginLimiter, m.Handler.Login)
	r.Handle(http.MethodGet, "/me", m.Handler.Me)
}
