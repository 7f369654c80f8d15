package router

import "net/http"

// RoutePolicy states whether a route requires a bearer token. Paths are
// relative to the /api group and use gin's pattern syntax.
type RoutePolicy struct {
	Method    string
	Path      string
	Protected bool
}

type Policy []RoutePolicy

// DefaultPolicy is the single place that decides which operations need auth:
// every mutation is protected, reads are public.
var DefaultPolicy = Policy{
	{Method: http.MethodPost, Path: "/user", Protected: false},
	{Method: http.MethodPost, Path: "/login", Protected: false},
	{Method: http.MethodGet, Path: "/me", Protected: true},

	{Method: http.MethodGet, Path: "/products", Protected: false},
	{Method: http.MethodGet, Path: "/products/search", Protected: false},
	{Method: http.MethodGet, Path: "/products/count/:price", Protected: false},
	{Method: http.MethodGet, Path: "/products/:id", Protected: false},
	{Method: http.MethodPost, Path: "/products", Protected: true},
	{Method: http.MethodPatch, Path: "/products/:id", Protected: true},
	{Method: http.MethodDelete, Path: "/products/:id", Protected: true},
	{Method: http.MethodPost, Path: "/products/:id/image", Protected: true},

	{Method: http.MethodGet, Path: "/debug/vars", Protected: false},
}

// Protected reports whether method+path requires auth. Routes missing from
// the table are protected.
func (p Policy) Protected(method, path string) bool {
	for _, rp := range p {
		if rp.Method == method && rp.Path == path {
			return rp.Protected
		}
	}
	return true
}
