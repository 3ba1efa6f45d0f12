package store

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

// migrationsFS is embedded so the service can self-bootstrap its database schema.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// queryTimeout bounds every store call so a hung connection cannot pin a
// request past the host's per-invocation limit.
const queryTimeout = 5 * time.Second

// PostgresStore is the durable persistence layer for vehicles, positions
// and alerts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Migrate applies the embedded goose migrations. Safe to run multiple times.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", p.pool.Config().ConnConfig.ConnString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return goose.UpContext(ctx, sqlDB, "migrations")
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// VehicleOwned reports whether vehicleID exists and belongs to userID.
// A missing vehicle and a foreign vehicle are indistinguishable to callers.
func (p *PostgresStore) VehicleOwned(ctx context.Context, userID, vehicleID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var one int
	err := p.pool.QueryRow(ctx, `
		SELECT 1 FROM vehicles WHERE id = $1 AND user_id = $2
	`, vehicleID, userID).Scan(&one)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Persist(err)
	}
	return true, nil
}

// UpsertPosition persists one position reading. The uniqueness constraint
// on (vehicle_id, recorded_at) turns re-ingestion of an already-seen
// reading into a no-op, so overlapping sync cycles converge.
func (p *PostgresStore) UpsertPosition(ctx context.Context, pos models.Position) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := p.pool.Exec(ctx, `
		INSERT INTO positions(id, vehicle_id, latitude, longitude, speed, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (vehicle_id, recorded_at) DO NOTHING
	`, pos.ID, pos.VehicleID, pos.Latitude, pos.Longitude, pos.Speed, pos.RecordedAt)

	if err != nil {
		return apperror.Persist(err)
	}
	return nil
}

// InsertAlert persists a new unresolved alert and returns the stored row
// including its server-side timestamp.
func (p *PostgresStore) InsertAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var saved models.Alert
	err := pgxscan.Get(ctx, p.pool, &saved, `
		INSERT INTO alerts(id, vehicle_id, type, message)
		VALUES ($1,$2,$3,$4)
		RETURNING id, vehicle_id, type, message, created_at, resolved
	`, alert.ID, alert.VehicleID, alert.Type, alert.Message)

	if err != nil {
		return models.Alert{}, apperror.Persist(err)
	}
	return saved, nil
}

// ResolveAlert flips an alert to resolved, but only when the alert's
// vehicle belongs to userID. The ownership predicate is part of the UPDATE
// so a foreign alert is never touched; ok=false covers both "missing" and
// "not owned".
func (p *PostgresStore) ResolveAlert(ctx context.Context, userID, alertID string) (models.Alert, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var saved models.Alert
	err := pgxscan.Get(ctx, p.pool, &saved, `
		UPDATE alerts a
		SET resolved = TRUE
		FROM vehicles v
		WHERE a.id = $1
		  AND a.vehicle_id = v.id
		  AND v.user_id = $2
		RETURNING a.id, a.vehicle_id, a.type, a.message, a.created_at, a.resolved
	`, alertID, userID)

	if pgxscan.NotFound(err) {
		return models.Alert{}, false, nil
	}
	if err != nil {
		return models.Alert{}, false, apperror.Persist(err)
	}
	return saved, true, nil
}
