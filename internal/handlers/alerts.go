package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/auth"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

// AlertStore is the alert surface: ownership check, insert, scoped reads,
// and the resolved flip.
type AlertStore interface {
	VehicleOwned(ctx context.Context, userID, vehicleID string) (bool, error)
	InsertAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
	ListAlerts(ctx context.Context, userID string, f models.AlertFilter) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, userID, alertID string) (models.Alert, bool, error)
}

// RegisterAlertRoutes registers the alert endpoints.
//
// GET   /alerts?vehicleId=&type=&startDate=&endDate=&resolved=
// POST  /alerts {vehicleId, type, message}
// PATCH /alerts/:id/resolve
//
// Writes run an explicit ownership check first; reads embed ownership in
// the query itself so foreign rows are never visible at all.
func RegisterAlertRoutes(r gin.IRoutes, st AlertStore) {
	r.GET("/alerts", func(c *gin.Context) {
		userID := auth.Principal(c)
		if userID == "" {
			writeError(c, apperror.Authn("no principal in request context"))
			return
		}

		var f models.AlertFilter
		f.VehicleID = c.Query("vehicleId")
		f.Type = c.Query("type")

		if v := c.Query("startDate"); v != "" {
			t, err := parseRFC3339(v)
			if err != nil {
				writeError(c, apperror.Validationf("Invalid query parameter", "startDate must be RFC3339"))
				return
			}
			f.Start = &t
		}
		if v := c.Query("endDate"); v != "" {
			t, err := parseRFC3339(v)
			if err != nil {
				writeError(c, apperror.Validationf("Invalid query parameter", "endDate must be RFC3339"))
				return
			}
			f.End = &t
		}
		if v := c.Query("resolved"); v != "" {
			resolved, err := strconv.ParseBool(v)
			if err != nil {
				writeError(c, apperror.Validationf("Invalid query parameter", "resolved must be a boolean"))
				return
			}
			f.Resolved = &resolved
		}

		alerts, err := st.ListAlerts(c.Request.Context(), userID, f)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
	})

	r.POST("/alerts", func(c *gin.Context) {
		userID := auth.Principal(c)
		if userID == "" {
			writeError(c, apperror.Authn("no principal in request context"))
			return
		}

		var req models.CreateAlertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				writeError(c, apperror.Validationf("Missing required fields", "vehicleId, type, and message are required"))
				return
			}
			writeError(c, apperror.Validationf("Invalid JSON in request body", err.Error()))
			return
		}

		owned, err := st.VehicleOwned(c.Request.Context(), userID, req.VehicleID)
		if err != nil {
			writeError(c, err)
			return
		}
		if !owned {
			writeError(c, apperror.Authz())
			return
		}

		alert, err := st.InsertAlert(c.Request.Context(), models.Alert{
			ID:        uuid.New(),
			VehicleID: req.VehicleID,
			Type:      req.Type,
			Message:   req.Message,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"alert": alert})
	})

	r.PATCH("/alerts/:id/resolve", func(c *gin.Context) {
		userID := auth.Principal(c)
		if userID == "" {
			writeError(c, apperror.Authn("no principal in request context"))
			return
		}

		alertID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			writeError(c, apperror.Validationf("Invalid alert id", "id must be a UUID"))
			return
		}

		alert, ok, err := st.ResolveAlert(c.Request.Context(), userID, alertID.String())
		if err != nil {
			writeError(c, err)
			return
		}
		if !ok {
			writeError(c, apperror.Authz())
			return
		}

		c.JSON(http.StatusOK, gin.H{"alert": alert})
	})
}
