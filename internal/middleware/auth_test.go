package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	jwtsvc "pronet/internal/pkg/jwt"
)

func protectedRouter(t *testing.T, jwt *jwtsvc.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequireAuth(jwt))
	router.GET("/protected", func(c *gin.Context) {
		accountID, _ := c.Get("account_id")
		kind, _ := c.Get("account_kind")
		c.JSON(http.StatusOK, gin.H{
			"account_id":   accountID,
			"account_kind": kind,
		})
	})
	return router
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", 1*time.Hour)
	validToken, _ := jwt.GenerateToken(42, "user")

	router := protectedRouter(t, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "user")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	jwt := jwtsvc.New("wrong-secret", 1*time.Hour)
	router := protectedRouter(t, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestRequireAuth_NoToken(t *testing.T) {
	jwt := jwtsvc.New("secret", 1*time.Hour)
	router := protectedRouter(t, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing Authorization header")
}

func TestRequireAuth_WrongFormat(t *testing.T) {
	jwt := jwtsvc.New("secret", 1*time.Hour)
	router := protectedRouter(t, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Authorization header")
}
