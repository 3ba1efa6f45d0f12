package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/ingest"
)

// SyncRunner executes one telemetry sync cycle.
type SyncRunner interface {
	Run(ctx context.Context) (ingest.Summary, error)
}

// RegisterSyncRoutes registers the service-internal sync trigger.
//
// POST /sync
// - Guarded by the service token, not user auth
// - A provider failure aborts the cycle (502); per-item persistence
//   failures are reported in the summary, not as a request failure
func RegisterSyncRoutes(r gin.IRoutes, runner SyncRunner) {
	r.POST("/sync", func(c *gin.Context) {
		summary, err := runner.Run(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"received": summary.Received,
			"failed":   summary.Failed,
		})
	})
}
