package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/auth"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

// VehicleStore lists the caller's fleet.
type VehicleStore interface {
	ListVehicles(ctx context.Context, userID string) ([]models.Vehicle, error)
}

// RegisterVehicleRoutes registers the vehicle listing endpoint.
//
// GET /vehicles
// - Requires bearer auth; returns the caller's vehicles only
func RegisterVehicleRoutes(r gin.IRoutes, st VehicleStore) {
	r.GET("/vehicles", func(c *gin.Context) {
		userID := auth.Principal(c)
		if userID == "" {
			writeError(c, apperror.Authn("no principal in request context"))
			return
		}

		vehicles, err := st.ListVehicles(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
	})
}
