package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a tracked unit owned by exactly one user.
// Vehicle lifecycle (creation/deletion) is managed out-of-band.
type Vehicle struct {
	ID             string `json:"id" db:"id"`
	UserID         string `json:"userId" db:"user_id"`
	Name           string `json:"name" db:"name"`
	Model          string `json:"model" db:"model"`
	RegistrationNo string `json:"registrationNo" db:"registration_no"`
}

// Position is one normalized GPS reading for a vehicle.
// (VehicleID, RecordedAt) is the natural key; the uniqueness constraint on
// that pair is what makes telemetry ingestion idempotent.
type Position struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VehicleID  string    `json:"vehicleId" db:"vehicle_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Speed      *float64  `json:"speed,omitempty" db:"speed"`
	RecordedAt time.Time `json:"timestamp" db:"recorded_at"`
}

// Alert is an operational notice attached to a vehicle. Alerts are never
// deleted; they are only ever flipped to resolved.
type Alert struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VehicleID string    `json:"vehicleId" db:"vehicle_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
	Resolved  bool      `json:"resolved" db:"resolved"`
}

// CreateAlertRequest is the POST /alerts payload.
type CreateAlertRequest struct {
	VehicleID string `json:"vehicleId" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// PositionFilter narrows a position query. Zero values mean "no constraint";
// the owner scope is always applied separately and cannot be opted out of.
type PositionFilter struct {
	VehicleID string
	Start     *time.Time
	End       *time.Time
}

// AlertFilter narrows an alert query. Zero values mean "no constraint".
type AlertFilter struct {
	VehicleID string
	Type      string
	Start     *time.Time
	End       *time.Time
	Resolved  *bool
}
