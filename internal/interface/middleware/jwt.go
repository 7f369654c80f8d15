package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/pkg/helpers"
	"github.com/oksasatya/inventory-api/pkg/response"
)

const (
	CtxClaimKey     = "sessionClaim"
	CtxUserEmailKey = "userEmail"
)

// JWTAuth reads the Authorization bearer token, verifies it and injects the
// session claim into the context. Missing token is 401, a bad one 403.
func JWTAuth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := helpers.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claim, err := jwt.Verify(token)
		if err != nil {
			if logger != nil && errors.Is(err, helpers.ErrInvalidToken) {
				logger.WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.FullPath(),
				}).Warn("rejected bearer token")
			}
			response.Error[any](c, http.StatusForbidden, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxClaimKey, *claim)
		c.Set(CtxUserEmailKey, claim.Subject)
		c.Next()
	}
}

// ClaimFrom returns the claim stored by JWTAuth
func ClaimFrom(c *gin.Context) (helpers.SessionClaim, bool) {
	v, ok := c.Get(CtxClaimKey)
	if !ok {
		return helpers.SessionClaim{}, false
	}
	claim, ok := v.(helpers.SessionClaim)
	return claim, ok
}
