// internal/api/middleware/auth.go
package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

const (
	apiKeyHeader  = "X-API-Key"
	authorizedCtx = "authorized" // Key to store the auth gate result in context
)

// APIKeyAuth computes the auth gate for the request: the X-API-Key header
// must match the configured key (constant-time compare). The middleware never
// aborts; it only records the boolean. The service layer owns the
// Unauthorized decision so that reads stay open and mutations are gated.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(apiKeyHeader)
		authorized := apiKey != "" &&
			subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1
		c.Set(authorizedCtx, authorized)
		c.Next()
	}
}

// IsAuthorized reports the auth gate result recorded by APIKeyAuth.
func IsAuthorized(c *gin.Context) bool {
	v, exists := c.Get(authorizedCtx)
	if !exists {
		return false
	}
	authorized, ok := v.(bool)
	return ok && authorized
}
