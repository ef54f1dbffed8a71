package handler // attendance summary endpoint

import (
	"errors"   // errors compares repository and adapter sentinels
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/slotsource"
	"github.com/nazosched/schedule-coordinator/internal/summary"
	"github.com/nazosched/schedule-coordinator/internal/utils"
)

// GetSummary handles GET /api/events/:eventUrlEncoded/summary. It fetches
// the canonical slot list from the booking platform and joins it with every
// stored selection record into the attendance matrix. The matrix is rebuilt
// on every request; nothing is cached. An unreachable slot source degrades
// to an empty slot list rather than failing the summary.
func (h *API) GetSummary(c echo.Context) error {
	raw, ok := decodeEventURL(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url encoding"})
	}
	eventURL, err := utils.CanonicalEventURL(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url"})
	}

	ev, err := h.Events.GetByURL(c.Request().Context(), eventURL, false)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not fetch event"})
	}
	if ev.StartDate == "" || ev.EndDate == "" || ev.LocationUID == nil || *ev.LocationUID == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "event is missing the date or location information needed for a summary"})
	}

	slots, err := h.Slots.FetchSlots(c.Request().Context(), ev.EventURL, ev.StartDate, ev.EndDate, *ev.LocationUID)
	if err != nil {
		if errors.Is(err, slotsource.ErrInvalidEventURL) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "event url does not match the booking platform format"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not fetch event slots"})
	}

	rawByUser, err := h.Selections.ListByEvent(c.Request().Context(), ev.EventURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load selections"})
	}

	name := ""
	if ev.Name != nil {
		name = *ev.Name
	}
	result := summary.Aggregate(summary.EventInfo{
		URL:       ev.EventURL,
		Name:      name,
		StartDate: ev.StartDate,
		EndDate:   ev.EndDate,
	}, slots, rawByUser)
	return c.JSON(http.StatusOK, result)
}
