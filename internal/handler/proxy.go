package handler // outbound proxy endpoints for the frontend

import (
	"encoding/json" // json probes the upstream response shape
	"errors"        // errors unwraps transport failures
	"io"            // io reads the proxied response body
	"net/http"      // http issues the fetch-html GET and provides status constants
	"net/url"       // url classifies transport errors as timeouts
	"strings"       // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/slotsource"
)

// GetSchedule handles POST /api/get-schedule. It forwards a caller-supplied
// date range and location to the booking platform's slot-listing API and
// returns the upstream payload in its raw shape. Unlike the summary path,
// upstream failures are propagated: the caller previews the live schedule
// and needs to see errors.
func (h *API) GetSchedule(c echo.Context) error {
	var body struct {
		EventURL    string `json:"event_url"`
		DateFrom    string `json:"date_from"`
		DateTo      string `json:"date_to"`
		LocationUID string `json:"location_uid"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.EventURL == "" || body.DateFrom == "" || body.DateTo == "" || body.LocationUID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "event_url, date_from, date_to and location_uid are required"})
	}

	status, raw, err := h.Slots.FetchRaw(c.Request().Context(), body.EventURL, body.DateFrom, body.DateTo, body.LocationUID)
	if err != nil {
		if errors.Is(err, slotsource.ErrInvalidEventURL) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "event_url does not match the booking platform format"})
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no response from the schedule API"})
	}
	if status < 200 || status > 299 {
		resp := map[string]any{"error": "the schedule API returned an error"}
		if json.Valid(raw) {
			resp["details"] = json.RawMessage(raw)
		}
		return c.JSON(status, resp)
	}

	// Pass a well-formed payload through verbatim; anything else collapses
	// to an empty schedule so the frontend always sees a dates array.
	var probe struct {
		Dates []json.RawMessage `json:"dates"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Dates == nil {
		return c.JSON(http.StatusOK, map[string]any{"dates": []any{}})
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// FetchHTML handles POST /api/fetch-html, a bounded-timeout GET-and-return
// proxy the frontend uses to read pages the browser cannot fetch directly.
// Timeouts map to 504; upstream failure statuses are propagated.
func (h *API) FetchHTML(c echo.Context) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	target := strings.TrimSpace(body.URL)
	if target == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url is required"})
	}

	client := &http.Client{Timeout: h.FetchTimeout}
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, target, nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid url"})
	}
	resp, err := client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "request to the external url timed out"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not fetch the external url"})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.JSON(resp.StatusCode, map[string]string{"error": "failed to fetch the external url: " + resp.Status})
	}
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read the external response"})
	}
	return c.JSON(http.StatusOK, map[string]string{"html": string(html)})
}
