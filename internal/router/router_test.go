package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazosched/schedule-coordinator/internal/config"
	"github.com/nazosched/schedule-coordinator/internal/handler"
	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/slotsource"
)

// newTestServer wires the full route table with no Redis (limiter disabled)
// and a database-free handler; only endpoints that never touch the database
// are exercised here.
func newTestServer() (*echo.Echo, config.Config) {
	cfg := config.Config{
		FrontendOrigin:  "https://frontend.example/",
		CORSOrigins:     []string{"http://localhost:5173"},
		IdentityHeaders: []string{"X-Forwarded-User", "X-Showcase-User"},
	}
	api := handler.NewAPI(
		repository.NewEventRepo(nil),
		repository.NewSelectionRepo(nil),
		slotsource.New("http://127.0.0.1:1", time.Second),
		time.Second,
	)
	e := echo.New()
	RegisterRoutes(e, api, cfg, nil)
	return e, cfg
}

func TestCatchAllRedirectsToFrontend(t *testing.T) {
	e, cfg := newTestServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/some/spa/route", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, cfg.FrontendOrigin, rec.Header().Get("Location"))
}

func TestUnknownAPIPathReturnsJSON404(t *testing.T) {
	e, _ := newTestServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/no-such-endpoint", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestGetUsernameFromTrustedHeader(t *testing.T) {
	e, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/get-username", nil)
	req.Header.Set("X-Showcase-User", "alice")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice"}`, rec.Body.String())
}

func TestGetUsernameAnonymous(t *testing.T) {
	e, _ := newTestServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/get-username", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":null}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
