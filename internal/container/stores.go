package container

import (
	"context"
	"fmt"

	"github.com/oksasatya/inventory-api/internal/infrastructure/memory"
	"github.com/oksasatya/inventory-api/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/inventory-api/internal/infrastructure/postgres"
)

// OpenStores sets the user and product repositories for the configured driver
// and returns a func releasing the underlying connection.
func OpenStores(ctx context.Context, c *Container) (func(), error) {
	cfg := c.Config
	switch cfg.StoreDriver {
	case "mongo", "mongodb":
		client, err := mongodb.Connect(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		c.Users = mongodb.NewUserRepository(db)
		c.Products = mongodb.NewProductRepository(db)
		return func() { _ = client.Disconnect(context.Background()) }, nil

	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, err
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		c.Users = pginfra.NewUserRepository(pool)
		c.Products = pginfra.NewProductRepository(pool)
		return pool.Close, nil

	case "memory":
		c.Users = memory.NewUserRepository()
		c.Products = memory.NewProductRepository()
		return func() {}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
