package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/inventory-api/internal/router/modules"
)

func TestDefaultPolicy(t *testing.T) {
	cases := []struct {
		method, path string
		protected    bool
	}{
		{http.MethodPost, "/user", false},
		{http.MethodPost, "/login", false},
		{http.MethodGet, "/me", true},
		{http.MethodGet, "/products", false},
		{http.MethodGet, "/products/:id", false},
		{http.MethodGet, "/products/search", false},
		{http.MethodGet, "/products/count/:price", false},
		{http.MethodPost, "/products", true},
		{http.MethodPatch, "/products/:id", true},
		{http.MethodDelete, "/products/:id", true},
		{http.MethodPost, "/products/:id/image", true},
		{http.MethodPut, "/products/:id", true},
		{http.MethodGet, "/unlisted", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.protected, DefaultPolicy.Protected(tc.method, tc.path), "%s %s", tc.method, tc.path)
	}
}

type stubModule struct{}

func (stubModule) Register(r modules.Routes) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.Handle(http.MethodGet, "/open", ok)
	r.Handle(http.MethodGet, "/closed", ok)
}

func TestRegistry_PrependsAuthFromPolicy(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	reg := NewRegistry(engine, Policy{
		{Method: http.MethodGet, Path: "/open", Protected: false},
	}, deny)
	reg.Add(stubModule{})
	reg.RegisterAll()

	get := func(path string) int {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, get("/api/open"))
	assert.Equal(t, http.StatusUnauthorized, get("/api/closed"))
}
