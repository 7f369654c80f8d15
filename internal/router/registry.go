package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/inventory-api/internal/interface/middleware"
)

type Registry struct {
	Engine  *gin.Engine
	Groups  []*gin.RouterGroup
	Policy  Policy
	auth    gin.HandlerFunc
	modules []Module
}

// NewRegistry mounts modules under each prefix ("/api" when none is given).
// auth runs first on every route the policy marks protected.
func NewRegistry(engine *gin.Engine, policy Policy, auth gin.HandlerFunc, prefixes ...string) *Registry {
	if len(prefixes) == 0 {
		prefixes = []string{"/api"}
	}
	groups := make([]*gin.RouterGroup, 0, len(prefixes))
	for _, p := range prefixes {
		groups = append(groups, engine.Group(p))
	}
	return &Registry{Engine: engine, Groups: groups, Policy: policy, auth: auth}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Handle registers a route on every mount, prepending the auth middleware when the policy requires it
func (r *Registry) Handle(method, path string, handlers ...gin.HandlerFunc) {
	chain := []gin.HandlerFunc{func(c *gin.Context) { c.Set(middleware.CtxRouteKey, path) }}
	if r.Policy.Protected(method, path) {
		chain = append(chain, r.auth)
	}
	chain = append(chain, handlers...)
	for _, g := range r.Groups {
		g.Handle(method, path, chain...)
	}
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r)
	}
}
