package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, Authn("x").Status())
	assert.Equal(t, http.StatusForbidden, Authz().Status())
	assert.Equal(t, http.StatusBadRequest, Validationf("x", "y").Status())
	assert.Equal(t, http.StatusBadGateway, Upstreamf(errors.New("boom"), "x").Status())
	assert.Equal(t, http.StatusInternalServerError, Persist(errors.New("boom")).Status())
}

func TestAuthzMessageIsCollapsed(t *testing.T) {
	// Missing and foreign vehicles must share one externally-visible message.
	assert.Equal(t, "Vehicle not found or unauthorized", Authz().Message)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("sync cycle: %w", Persist(cause))

	var ae *Error
	require.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, Persistence, ae.Kind)
	assert.True(t, errors.Is(wrapped, cause))
}
