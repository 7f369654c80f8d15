package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
)

func TestObjectID(t *testing.T) {
	oid := bson.NewObjectID()
	got, err := objectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = objectID("123")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestPatchToSet(t *testing.T) {
	name := "Lamp"
	qty := 0
	set := patchToSet(entity.ProductPatch{Name: &name, Quantity: &qty})

	keys := make([]string, 0, len(set))
	for _, e := range set {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"updatedAt", "name", "quantity"}, keys)
	assert.Equal(t, 0, set[2].Value)
}

func TestProductDocument_ToEntity(t *testing.T) {
	doc := productDocument{ID: bson.NewObjectID(), Name: "Desk", Price: 150, ImageURL: "https://img"}
	p := doc.toEntity()
	assert.Equal(t, doc.ID.Hex(), p.ID)
	assert.Equal(t, "Desk", p.Name)
	assert.Equal(t, "https://img", p.ImageURL)
}
