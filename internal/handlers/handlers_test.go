package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/auth"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/ingest"
	"github.com/PratikDhanave/fleet-telemetry-service/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testToken = "tok-user1"
	testUser  = "user1"
)

// newRouter mounts the given register funcs behind real bearer auth so the
// tests exercise the full request path: Authorization header → principal →
// handler → store.
func newRouter(register func(r gin.IRoutes)) *gin.Engine {
	r := gin.New()
	grp := r.Group("/")
	grp.Use(auth.Middleware(auth.StaticVerifier{testToken: testUser}))
	register(grp)
	return r
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

// fakeAlertStore implements AlertStore with canned data and call recording.
type fakeAlertStore struct {
	ownedVehicles map[string]bool
	alerts        []models.Alert
	inserted      []models.Alert
	lastFilter    models.AlertFilter
	listCalls     int
	resolveResult *models.Alert
}

func (s *fakeAlertStore) VehicleOwned(_ context.Context, _, vehicleID string) (bool, error) {
	return s.ownedVehicles[vehicleID], nil
}

func (s *fakeAlertStore) InsertAlert(_ context.Context, alert models.Alert) (models.Alert, error) {
	s.inserted = append(s.inserted, alert)
	return alert, nil
}

func (s *fakeAlertStore) ListAlerts(_ context.Context, _ string, f models.AlertFilter) ([]models.Alert, error) {
	s.listCalls++
	s.lastFilter = f
	if s.alerts == nil {
		return []models.Alert{}, nil
	}
	return s.alerts, nil
}

func (s *fakeAlertStore) ResolveAlert(_ context.Context, _, _ string) (models.Alert, bool, error) {
	if s.resolveResult == nil {
		return models.Alert{}, false, nil
	}
	return *s.resolveResult, true, nil
}

// fakePositionStore implements PositionStore with filter capture.
type fakePositionStore struct {
	positions  []models.Position
	lastFilter models.PositionFilter
	listCalls  int
}

func (s *fakePositionStore) ListPositions(_ context.Context, _ string, f models.PositionFilter) ([]models.Position, error) {
	s.listCalls++
	s.lastFilter = f
	if s.positions == nil {
		return []models.Position{}, nil
	}
	return s.positions, nil
}

// fakeSyncRunner implements SyncRunner.
type fakeSyncRunner struct {
	summary ingest.Summary
	err     error
	calls   int
}

func (s *fakeSyncRunner) Run(context.Context) (ingest.Summary, error) {
	s.calls++
	return s.summary, s.err
}
