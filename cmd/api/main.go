package main

import (
	"context"
	"log"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/config"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/httpserver"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/ingest"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/store"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/traccar"
)

// main boots the service: config → DB → migrations → provider client → HTTP server.
func main() {
	// Load runtime config from environment (DB_URL, AUTH_TOKENS, Traccar credentials).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Apply embedded migrations so `docker compose up --build` is enough.
	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Provider client + sync cycle driver.
	provider := traccar.NewClient(cfg.TraccarURL, cfg.TraccarToken)
	syncer := ingest.NewSyncer(provider, db, nil)

	// Build HTTP router (public health + authenticated APIs + sync trigger).
	router := httpserver.NewRouter(cfg, db, syncer)

	log.Println("server started on " + cfg.ListenAddr)
	log.Fatal(router.Run(cfg.ListenAddr))
}
