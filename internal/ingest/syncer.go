// Package ingest drives one telemetry sync cycle: fetch the provider
// snapshot, map each record into the internal schema, and upsert it.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/traccar"
)

// Fetcher retrieves the current device-position snapshot from the provider.
type Fetcher interface {
	Positions(ctx context.Context) ([]traccar.PositionRecord, error)
}

// PositionStore persists mapped positions idempotently.
type PositionStore interface {
	UpsertPosition(ctx context.Context, pos models.Position) error
}

// Summary reports one completed sync cycle.
type Summary struct {
	Received int `json:"received"`
	Failed   int `json:"failed"`
}

// Syncer holds no state between cycles; every Run is independent and safe
// to repeat or overlap, because upserts are keyed by (vehicle, timestamp).
type Syncer struct {
	fetcher Fetcher
	store   PositionStore
	log     *slog.Logger
}

// NewSyncer wires the fetcher and store for sync cycles.
func NewSyncer(fetcher Fetcher, store PositionStore, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{fetcher: fetcher, store: store, log: log}
}

// Run executes one sync cycle.
//
// The fetch is fail-fast: any provider failure aborts the cycle before a
// single row is written. The upsert loop is the opposite: a malformed
// record or a failed write is logged and counted, and the loop moves on,
// so one bad item never blocks the rest of the batch.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	records, err := s.fetcher.Positions(ctx)
	if err != nil {
		syncCycles.WithLabelValues(outcomeError).Inc()
		return Summary{}, err
	}

	failed := 0
	for _, rec := range records {
		pos, err := mapRecord(rec)
		if err != nil {
			failed++
			positionsFailed.Inc()
			s.log.Warn("skipping malformed position record",
				"deviceId", rec.DeviceID, "fixTime", rec.FixTime, "err", err)
			continue
		}

		if err := s.store.UpsertPosition(ctx, pos); err != nil {
			failed++
			positionsFailed.Inc()
			s.log.Warn("failed to persist position",
				"vehicleId", pos.VehicleID, "recordedAt", pos.RecordedAt, "err", err)
			continue
		}
		positionsUpserted.Inc()
	}

	syncCycles.WithLabelValues(outcomeOK).Inc()
	return Summary{Received: len(records), Failed: failed}, nil
}

// mapRecord converts a provider record into the internal schema. The
// generated row ID is incidental; idempotence comes from the natural key.
func mapRecord(rec traccar.PositionRecord) (models.Position, error) {
	if rec.DeviceID == "" {
		return models.Position{}, errors.New("record has no deviceId")
	}

	ts, err := time.Parse(time.RFC3339, rec.FixTime)
	if err != nil {
		return models.Position{}, errors.New("fixTime must be RFC3339")
	}

	return models.Position{
		ID:         uuid.New(),
		VehicleID:  rec.DeviceID,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		Speed:      rec.Speed,
		RecordedAt: ts.UTC(),
	}, nil
}
