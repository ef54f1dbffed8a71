package handler // per-user selection read/upsert handlers

import (
	"encoding/json" // json validates the free-form selections payload
	"errors"        // errors compares repository sentinels
	"net/http"      // http provides status code constants
	"strings"       // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/queue"
	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/utils"
)

// selectionTarget resolves the (username, canonical event URL) pair from the
// path parameters shared by both selection endpoints.
func selectionTarget(c echo.Context) (username, eventURL string, ok bool) {
	username = strings.TrimSpace(c.Param("username"))
	if username == "" {
		return "", "", false
	}
	raw, okURL := decodeEventURL(c)
	if !okURL {
		return "", "", false
	}
	eventURL, err := utils.CanonicalEventURL(raw)
	if err != nil {
		return "", "", false
	}
	return username, eventURL, true
}

// GetSelections handles GET /api/users/:username/events/:eventUrlEncoded/selections
// and returns the user's stored selection payload verbatim. A user who has
// never saved gets an empty list; a missing or deleted event gets 404.
func (h *API) GetSelections(c echo.Context) error {
	username, eventURL, ok := selectionTarget(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid username or event url"})
	}

	if _, err := h.Events.GetByURL(c.Request().Context(), eventURL, false); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not fetch event"})
	}

	sel, err := h.Selections.GetOne(c.Request().Context(), username, eventURL)
	if err != nil {
		if errors.Is(err, repository.ErrSelectionNotFound) {
			return c.JSON(http.StatusOK, []any{})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load selections"})
	}
	return c.JSONBlob(http.StatusOK, sel.Payload)
}

// SaveSelections handles POST /api/users/:username/events/:eventUrlEncoded/selections.
// The body carries the raw per-slot payload under "selections"; its shape is
// stored as-is and only well-formedness is enforced here (statuses stay
// opaque strings). Saving undeletes a previously soft-deleted record; a
// missing or deleted event gets 404.
func (h *API) SaveSelections(c echo.Context) error {
	username, eventURL, ok := selectionTarget(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid username or event url"})
	}

	var body struct {
		Selections json.RawMessage `json:"selections"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(body.Selections) == 0 || !json.Valid(body.Selections) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "selections must be valid JSON"})
	}

	if err := h.Selections.Upsert(c.Request().Context(), username, eventURL, body.Selections); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save selections"})
	}

	publishActivity(queue.ActivityEvent{
		Action:   queue.ActionSelectionSaved,
		EventURL: eventURL,
		Username: username,
	})
	return c.NoContent(http.StatusNoContent)
}
