package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// probeRouter mounts the middleware in front of a handler that records
// whether it ran and with which principal.
func probeRouter(mw gin.HandlerFunc) (*gin.Engine, *string) {
	var principal string
	r := gin.New()
	grp := r.Group("/")
	grp.Use(mw)
	grp.GET("/probe", func(c *gin.Context) {
		principal = Principal(c)
		c.JSON(http.StatusOK, gin.H{"user": principal})
	})
	return r, &principal
}

func doGet(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_NoHeader(t *testing.T) {
	r, principal := probeRouter(Middleware(StaticVerifier{"tok": "user1"}))

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Handler must never run for an unauthenticated request.
	assert.Empty(t, *principal)
}

func TestMiddleware_WrongScheme(t *testing.T) {
	r, _ := probeRouter(Middleware(StaticVerifier{"tok": "user1"}))

	w := doGet(r, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_UnknownToken(t *testing.T) {
	r, _ := probeRouter(Middleware(StaticVerifier{"tok": "user1"}))

	w := doGet(r, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestMiddleware_ResolvesPrincipal(t *testing.T) {
	r, principal := probeRouter(Middleware(StaticVerifier{"tok": "user1"}))

	w := doGet(r, "Bearer tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user1", *principal)
}

func TestServiceToken(t *testing.T) {
	r, _ := probeRouter(ServiceToken("sync-secret"))

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer wrong").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer sync-secret").Code)
}
