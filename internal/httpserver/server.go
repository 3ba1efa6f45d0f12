package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/auth"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/config"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/handlers"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/ingest"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/store"
)

// Process-wide CORS policy, applied uniformly to every response including
// errors and OPTIONS preflight. The header set matches what the dashboard
// clients send.
var corsPolicy = cors.Config{
	AllowAllOrigins: true,
	AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
	AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type"},
}

// NewRouter wires public endpoints, authenticated APIs, and the
// service-internal sync trigger.
// Public: /health, /ready, /metrics
// Bearer-authenticated: /positions, /alerts, /vehicles
// Service token: /sync
func NewRouter(cfg *config.Config, st *store.PostgresStore, syncer *ingest.Syncer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsPolicy))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth group resolves the caller's principal via bearer token.
	authGroup := r.Group("/")
	authGroup.Use(auth.Middleware(auth.StaticVerifier(cfg.AuthTokens)))

	handlers.RegisterPositionRoutes(authGroup, st)
	handlers.RegisterAlertRoutes(authGroup, st)
	handlers.RegisterVehicleRoutes(authGroup, st)

	// The sync trigger is driven by the external scheduler, not end users.
	syncGroup := r.Group("/")
	syncGroup.Use(auth.ServiceToken(cfg.SyncToken))

	handlers.RegisterSyncRoutes(syncGroup, syncer)

	return r
}
