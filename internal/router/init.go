package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/inventory-api/internal/container"
	handlers "github.com/oksasatya/inventory-api/internal/interface/http"
	"github.com/oksasatya/inventory-api/internal/interface/middleware"
	"github.com/oksasatya/inventory-api/internal/router/modules"
	"github.com/oksasatya/inventory-api/pkg/helpers"
	"github.com/oksasatya/inventory-api/pkg/response"
	"github.com/oksasatya/inventory-api/pkg/validation"
)

// InitModules builds every feature module from the container and adds it to the registry
func InitModules(r *Registry, c *container.Container) {
	userHandler := handlers.NewUserHandler(c.AuthService(), c.Logger)
	productHandler := handlers.NewProductHandler(c.ProductService(), c.Logger)

	r.Add(modules.NewUserModule(userHandler, c.Redis))
	r.Add(modules.NewProductModule(productHandler, c.Redis))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}

// NewEngine builds the gin engine with global middleware and all modules registered
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxyList())
	if err == nil {
		if len(trusted) == 0 {
			err = r.SetTrustedProxies(nil)
		} else {
			err = r.SetTrustedProxies(cfg.TrustedProxyList())
		}
	}
	if err != nil {
		helpers.LogWarn(c.Logger, "invalid TRUSTED_PROXIES, forwarding headers ignored", err, nil)
		trusted = nil
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(trusted))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(c.Logger))
	}

	r.GET("/", func(ctx *gin.Context) { ctx.String(http.StatusOK, "Hello world") })
	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	})

	// mounted at the root and again under /api
	reg := NewRegistry(r, DefaultPolicy, middleware.JWTAuth(c.JWT, c.Logger), "", "/api")
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
