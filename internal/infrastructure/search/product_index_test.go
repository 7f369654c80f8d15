package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *ProductIndex {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewProductIndex(es, "products")
}

// esHeaders satisfies the client's product check
func esHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery("lamp", 5)
	assert.Equal(t, 5, q["size"])
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "lamp", mm["query"])
}

func TestProductIndex_Index(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		esHeaders(w)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.Index(context.Background(), &entity.Product{ID: "p1", Name: "Lamp", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "/products/_doc/p1", gotPath)
	assert.Equal(t, "Lamp", gotBody["name"])
}

func TestProductIndex_Search(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		esHeaders(w)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"p1","_source":{"id":"p1","name":"Lamp","price":20}}]}}`))
	})

	got, err := idx.Search(context.Background(), "lamp", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, 20.0, got[0].Price)
}

func TestProductIndex_RemoveMissingIsOK(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		esHeaders(w)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	assert.NoError(t, idx.Remove(context.Background(), "p1"))
}
