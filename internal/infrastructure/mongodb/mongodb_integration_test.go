//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
)

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("inventory_test")
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestRepositories_Mongo(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		users := NewUserRepository(db)
		u := &entity.User{Name: "Ada", Email: "ada@x.com", PasswordHash: "$2a$04$hash", CreatedAt: time.Now().UTC()}
		require.NoError(t, users.Create(ctx, u))
		assert.NotEmpty(t, u.ID)

		err := users.Create(ctx, &entity.User{Name: "B", Email: "ada@x.com", PasswordHash: "x", CreatedAt: time.Now().UTC()})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		err = users.Create(ctx, &entity.User{Name: "C", Email: "ADA@x.com", PasswordHash: "x", CreatedAt: time.Now().UTC()})
		assert.ErrorIs(t, err, repository.ErrDuplicate, "uniqueness ignores case")

		got, err := users.GetByEmail(ctx, "ada@x.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "$2a$04$hash", got.PasswordHash)

		_, err = users.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("mixed-case email stored before normalisation", func(t *testing.T) {
		_, err := db.Collection(usersCollection).InsertOne(ctx, bson.D{
			{Key: "name", Value: "Grace"},
			{Key: "email", Value: "Grace.Hopper@Example.com"},
			{Key: "password", Value: "$2a$04$other"},
			{Key: "createdAt", Value: time.Now().UTC()},
		})
		require.NoError(t, err)

		got, err := NewUserRepository(db).GetByEmail(ctx, "grace.hopper@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Grace", got.Name)
	})

	t.Run("products", func(t *testing.T) {
		products := NewProductRepository(db)

		n, err := products.CountPriceAbove(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n, "empty aggregation counts zero")

		p := &entity.Product{Name: "Widget", Price: 10, Quantity: 1}
		require.NoError(t, products.Create(ctx, p))
		require.NoError(t, products.Create(ctx, &entity.Product{Name: "Gadget", Price: 30}))

		price := 25.0
		updated, err := products.Update(ctx, p.ID, entity.ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 25.0, updated.Price, "update returns the document after the change")
		assert.Equal(t, "Widget", updated.Name)

		n, err = products.CountPriceAbove(ctx, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		list, err := products.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		require.NoError(t, products.Delete(ctx, p.ID))
		assert.ErrorIs(t, products.Delete(ctx, p.ID), repository.ErrNotFound)
		_, err = products.Update(ctx, p.ID, entity.ProductPatch{Price: &price})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = products.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
	})
}
