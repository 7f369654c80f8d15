package router

import "github.com/oksasatya/inventory-api/internal/router/modules"

// Module describes a feature module that registers its routes through the policy-aware registry
type Module interface {
	Register(r modules.Routes)
}
