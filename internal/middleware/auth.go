package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "pronet/internal/pkg/jwt"
)

// RequireAuth validates the Bearer token and stores account identity
// in the request context. Token issuance lives in the identity service;
// this API only verifies.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("account_kind", claims.Kind)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// AccountID extracts the authenticated account id set by RequireAuth.
// Returns 0 and writes a 401 when the context has no identity.
func AccountID(c *gin.Context) int64 {
	id, exists := c.Get("account_id")
	if !exists {
		abortUnauthorized(c, "Authentication required")
		return 0
	}
	switch v := id.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	abortUnauthorized(c, "Invalid account id")
	return 0
}
