package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// principalCtxKey is the Gin context key used to store the authenticated user ID.
const principalCtxKey = "principal_id"

// TokenVerifier resolves a bearer token to a user ID. The production
// implementation is backed by the identity provider; StaticVerifier covers
// config-driven deployments and tests.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier maps bearer tokens to user IDs.
type StaticVerifier map[string]string

func (v StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	user, ok := v[token]
	if !ok {
		return "", ErrUnknownToken
	}
	return user, nil
}

// ErrUnknownToken is returned when a presented token resolves to no user.
var ErrUnknownToken = errors.New("unknown token")

// Middleware enforces bearer authentication. It runs before any data
// access: requests without a resolvable credential never reach a handler.
func Middleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"details": "missing or malformed authorization header",
			})
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil || user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"details": "invalid token",
			})
			return
		}

		c.Set(principalCtxKey, user)
		c.Next()
	}
}

// ServiceToken guards service-internal endpoints (the sync trigger) with a
// shared secret instead of a user credential.
func ServiceToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"details": "invalid service token",
			})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated user ID from the request context.
func Principal(c *gin.Context) string {
	v, _ := c.Get(principalCtxKey)
	s, _ := v.(string)
	return s
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
