package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
)

// writeError serializes a failure as `{error, details}` with the status
// code from the error taxonomy. Unknown errors become a generic 500; raw
// causes never reach the client.
func writeError(c *gin.Context, err error) {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status(), gin.H{"error": ae.Message, "details": ae.Details})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"details": "unexpected failure",
	})
}

// parseRFC3339 parses an RFC3339 timestamp and normalizes it to UTC.
func parseRFC3339(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
