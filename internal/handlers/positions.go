package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/auth"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

// PositionStore is the read surface the positions endpoint needs.
type PositionStore interface {
	ListPositions(ctx context.Context, userID string, f models.PositionFilter) ([]models.Position, error)
}

// RegisterPositionRoutes registers the position read endpoint.
//
// GET /positions?vehicleId=&startTime=&endTime=
// - Requires bearer auth (caller's vehicles only)
// - Time bounds are inclusive RFC3339; a missing filter means no constraint
func RegisterPositionRoutes(r gin.IRoutes, st PositionStore) {
	r.GET("/positions", func(c *gin.Context) {
		userID := auth.Principal(c)
		if userID == "" {
			writeError(c, apperror.Authn("no principal in request context"))
			return
		}

		var f models.PositionFilter
		f.VehicleID = c.Query("vehicleId")

		if v := c.Query("startTime"); v != "" {
			t, err := parseRFC3339(v)
			if err != nil {
				writeError(c, apperror.Validationf("Invalid query parameter", "startTime must be RFC3339"))
				return
			}
			f.Start = &t
		}
		if v := c.Query("endTime"); v != "" {
			t, err := parseRFC3339(v)
			if err != nil {
				writeError(c, apperror.Validationf("Invalid query parameter", "endTime must be RFC3339"))
				return
			}
			f.End = &t
		}

		positions, err := st.ListPositions(c.Request.Context(), userID, f)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"positions": positions})
	})
}
