package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/slotsource"
)

const testEventURL = "https://escape.id/org/acme/event/heist/"

// newProxyAPI builds an API whose slot client targets the given upstream.
// The repositories are never touched by the proxy endpoints.
func newProxyAPI(upstream string, fetchTimeout time.Duration) *API {
	return NewAPI(
		repository.NewEventRepo(nil),
		repository.NewSelectionRepo(nil),
		slotsource.New(upstream, 2*time.Second),
		fetchTimeout,
	)
}

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestGetSchedulePassesUpstreamBodyThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dates":[{"slots":[{"startAt":"2024-01-01T10:00:00Z"}]}]}`))
	}))
	defer srv.Close()

	h := newProxyAPI(srv.URL, time.Second)
	rec, c := postJSON(echo.New(), "/api/get-schedule",
		`{"event_url":"`+testEventURL+`","date_from":"2024-01-01","date_to":"2024-01-02","location_uid":"loc-1"}`)
	require.NoError(t, h.GetSchedule(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dates":[{"slots":[{"startAt":"2024-01-01T10:00:00Z"}]}]}`, rec.Body.String())
}

func TestGetScheduleCollapsesMalformedUpstreamBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	h := newProxyAPI(srv.URL, time.Second)
	rec, c := postJSON(echo.New(), "/api/get-schedule",
		`{"event_url":"`+testEventURL+`","date_from":"2024-01-01","date_to":"2024-01-02","location_uid":"loc-1"}`)
	require.NoError(t, h.GetSchedule(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dates":[]}`, rec.Body.String())
}

func TestGetSchedulePropagatesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"reason":"blocked"}`))
	}))
	defer srv.Close()

	h := newProxyAPI(srv.URL, time.Second)
	rec, c := postJSON(echo.New(), "/api/get-schedule",
		`{"event_url":"`+testEventURL+`","date_from":"2024-01-01","date_to":"2024-01-02","location_uid":"loc-1"}`)
	require.NoError(t, h.GetSchedule(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "blocked")
}

func TestGetScheduleUnreachableUpstreamIs503(t *testing.T) {
	h := newProxyAPI("http://127.0.0.1:1", time.Second)
	rec, c := postJSON(echo.New(), "/api/get-schedule",
		`{"event_url":"`+testEventURL+`","date_from":"2024-01-01","date_to":"2024-01-02","location_uid":"loc-1"}`)
	require.NoError(t, h.GetSchedule(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetScheduleValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Missing fields", body: `{"event_url":"` + testEventURL + `"}`},
		{name: "Bad event url pattern", body: `{"event_url":"https://example.com/x/","date_from":"2024-01-01","date_to":"2024-01-02","location_uid":"loc-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newProxyAPI("http://127.0.0.1:1", time.Second)
			rec, c := postJSON(echo.New(), "/api/get-schedule", tt.body)
			require.NoError(t, h.GetSchedule(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFetchHTMLReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	h := newProxyAPI("http://127.0.0.1:1", time.Second)
	rec, c := postJSON(echo.New(), "/api/fetch-html", `{"url":"`+srv.URL+`"}`)
	require.NoError(t, h.FetchHTML(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"html":"<html><body>hello</body></html>"}`, rec.Body.String())
}

func TestFetchHTMLTimeoutIs504(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	h := newProxyAPI("http://127.0.0.1:1", 50*time.Millisecond)
	rec, c := postJSON(echo.New(), "/api/fetch-html", `{"url":"`+srv.URL+`"}`)
	require.NoError(t, h.FetchHTML(c))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestFetchHTMLPropagatesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	h := newProxyAPI("http://127.0.0.1:1", time.Second)
	rec, c := postJSON(echo.New(), "/api/fetch-html", `{"url":"`+srv.URL+`"}`)
	require.NoError(t, h.FetchHTML(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFetchHTMLRequiresURL(t *testing.T) {
	h := newProxyAPI("http://127.0.0.1:1", time.Second)
	rec, c := postJSON(echo.New(), "/api/fetch-html", `{}`)
	require.NoError(t, h.FetchHTML(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
