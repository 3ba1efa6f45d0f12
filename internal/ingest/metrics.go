package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	syncCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_sync_cycles_total",
		Help: "Completed telemetry sync cycles by outcome.",
	}, []string{"outcome"})

	positionsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_sync_positions_upserted_total",
		Help: "Provider position records successfully upserted.",
	})

	positionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_sync_positions_failed_total",
		Help: "Provider position records skipped due to mapping or persistence failures.",
	})
)
