package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

// Read queries are always joined to vehicles and scoped to the caller's
// user_id as the first predicate. Filters are conjunctive; an unset filter
// adds no predicate at all.

// ListVehicles returns the caller's vehicles.
func (p *PostgresStore) ListVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	vehicles := []models.Vehicle{}
	err := pgxscan.Select(ctx, p.pool, &vehicles, `
		SELECT id, user_id, name, model, registration_no
		FROM vehicles
		WHERE user_id = $1
	`, userID)

	if err != nil {
		return nil, apperror.Persist(err)
	}
	return vehicles, nil
}

// ListPositions returns position rows visible to userID, narrowed by the
// filter. No ordering is imposed beyond the time bounds.
func (p *PostgresStore) ListPositions(ctx context.Context, userID string, f models.PositionFilter) ([]models.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := positionQuery(userID, f)

	positions := []models.Position{}
	if err := pgxscan.Select(ctx, p.pool, &positions, query, args...); err != nil {
		return nil, apperror.Persist(err)
	}
	return positions, nil
}

// ListAlerts returns alert rows visible to userID, narrowed by the filter,
// most recent first.
func (p *PostgresStore) ListAlerts(ctx context.Context, userID string, f models.AlertFilter) ([]models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := alertQuery(userID, f)

	alerts := []models.Alert{}
	if err := pgxscan.Select(ctx, p.pool, &alerts, query, args...); err != nil {
		return nil, apperror.Persist(err)
	}
	return alerts, nil
}

func positionQuery(userID string, f models.PositionFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT p.id, p.vehicle_id, p.latitude, p.longitude, p.speed, p.recorded_at
		FROM positions p
		JOIN vehicles v ON v.id = p.vehicle_id
		WHERE v.user_id = $1`)
	args := []any{userID}

	if f.VehicleID != "" {
		args = append(args, f.VehicleID)
		fmt.Fprintf(&b, " AND p.vehicle_id = $%d", len(args))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		fmt.Fprintf(&b, " AND p.recorded_at >= $%d", len(args))
	}
	if f.End != nil {
		args = append(args, *f.End)
		fmt.Fprintf(&b, " AND p.recorded_at <= $%d", len(args))
	}

	return b.String(), args
}

func alertQuery(userID string, f models.AlertFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT a.id, a.vehicle_id, a.type, a.message, a.created_at, a.resolved
		FROM alerts a
		JOIN vehicles v ON v.id = a.vehicle_id
		WHERE v.user_id = $1`)
	args := []any{userID}

	if f.VehicleID != "" {
		args = append(args, f.VehicleID)
		fmt.Fprintf(&b, " AND a.vehicle_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		fmt.Fprintf(&b, " AND a.type = $%d", len(args))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		fmt.Fprintf(&b, " AND a.created_at >= $%d", len(args))
	}
	if f.End != nil {
		args = append(args, *f.End)
		fmt.Fprintf(&b, " AND a.created_at <= $%d", len(args))
	}
	if f.Resolved != nil {
		args = append(args, *f.Resolved)
		fmt.Fprintf(&b, " AND a.resolved = $%d", len(args))
	}

	b.WriteString(" ORDER BY a.created_at DESC")
	return b.String(), args
}
