package modules

import "github.com/gin-gonic/gin"

// Routes is the registration surface a module sees. The implementation decides
// from the central policy table whether a route needs a bearer token.
type Routes interface {
	Handle(method, path string, handlers ...gin.HandlerFunc)
}
