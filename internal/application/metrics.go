package application

import "expvar"

// counters exposed on /api/debug/vars
var stats = expvar.NewMap("inventory")

const (
	statRegistrations = "registrations"
	statLoginOK       = "logins_ok"
	statLoginFailed   = "logins_failed"
	statProducts      = "products_created"
)
