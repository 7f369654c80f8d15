package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/config"
	"github.com/oksasatya/inventory-api/internal/application"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
	"github.com/oksasatya/inventory-api/pkg/helpers"
)

// Container carries the components built at startup. It is constructed once in
// main (or a test) and passed down explicitly; nothing here is package state.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client

	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher

	Users    repository.UserRepository
	Products repository.ProductRepository

	// optional collaborators, nil when not configured
	Search application.ProductSearcher
	Images application.ObjectUploader
	Events application.EventPublisher
}

// New wires the auth primitives from cfg; stores and optional services are set by the caller.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Hasher: helpers.NewPasswordHasher(cfg.BcryptCost),
	}
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.Hasher, c.JWT, c.Events, c.Logger, c.Config.AppName, c.Config.StoreTimeout)
}

func (c *Container) ProductService() *application.ProductService {
	return application.NewProductService(c.Products, c.Search, c.Images, c.Logger, c.Config.StoreTimeout)
}
