package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/config"
	"github.com/oksasatya/inventory-api/internal/application"
	"github.com/oksasatya/inventory-api/internal/container"
	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/pkg/helpers"
)

// seed creates a demo user and a few products in the configured store.
// The password comes from -password or SEED_PASSWORD and is never printed.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "demo@example.com", "demo user email")
	name := flag.String("name", "demoUser", "demo user name")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "demo user password (or SEED_PASSWORD)")
	products := flag.Bool("products", true, "also seed sample products")
	flag.Parse()

	if *password == "" {
		log.Fatal("set -password or SEED_PASSWORD")
	}

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	c := container.New(cfg, logger)
	closeStores, err := container.OpenStores(ctx, c)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStores()

	u, err := c.AuthService().Register(ctx, application.RegisterInput{Name: *name, Email: *email, Password: *password})
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		logger.WithField("email", *email).Info("demo user already exists")
	case err != nil:
		logger.Fatalf("failed to seed user: %v", err)
	default:
		logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("seeded user")
	}

	if !*products {
		return
	}
	svc := c.ProductService()
	for _, p := range sampleProducts() {
		if err := svc.Create(ctx, &p); err != nil {
			logger.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
		logger.WithFields(logrus.Fields{"id": p.ID, "name": p.Name}).Info("seeded product")
	}
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{Name: "USB-C Cable", Description: "1m braided cable", Price: 9.99, Quantity: 120, Category: "accessories"},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: 89.5, Quantity: 15, Category: "peripherals"},
		{Name: "27in Monitor", Description: "1440p IPS", Price: 279, Quantity: 7, Category: "displays"},
	}
}
