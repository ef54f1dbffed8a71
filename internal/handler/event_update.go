package handler // handler package contains event update and delete handlers

import (
	"errors"   // errors compares repository sentinels
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/middleware"
	"github.com/nazosched/schedule-coordinator/internal/queue"
	"github.com/nazosched/schedule-coordinator/internal/repository"
	"github.com/nazosched/schedule-coordinator/internal/utils"
)

// UpdateEvent handles PUT /api/events/:eventUrlEncoded. Any subset of the
// mutable fields may be supplied; a new eventUrl renames the event and moves
// its selection records atomically. 404 when the target is not active, 409
// when the rename target is taken.
func (h *API) UpdateEvent(c echo.Context) error {
	raw, ok := decodeEventURL(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url encoding"})
	}
	eventURL, err := utils.CanonicalEventURL(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url"})
	}

	var body struct {
		EventURL        *string `json:"eventUrl"`
		Name            *string `json:"name"`
		StartDate       *string `json:"startDate"`
		EndDate         *string `json:"endDate"`
		LocationUID     *string `json:"locationUid"`
		LocationName    *string `json:"locationName"`
		LocationAddress *string `json:"locationAddress"`
		EstimatedTime   *string `json:"estimatedTime"`
		MaxParticipants *int    `json:"maxParticipants"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.EventURL == nil && body.Name == nil && body.StartDate == nil && body.EndDate == nil &&
		body.LocationUID == nil && body.LocationName == nil && body.LocationAddress == nil &&
		body.EstimatedTime == nil && body.MaxParticipants == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no updatable fields supplied"})
	}
	if body.StartDate != nil && !validDate(*body.StartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "startDate must use the YYYY-MM-DD format"})
	}
	if body.EndDate != nil && !validDate(*body.EndDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "endDate must use the YYYY-MM-DD format"})
	}
	if body.StartDate != nil && body.EndDate != nil && dateAfter(*body.StartDate, *body.EndDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "endDate must not be before startDate"})
	}

	upd := repository.EventUpdate{
		Name:            body.Name,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		LocationUID:     body.LocationUID,
		LocationName:    body.LocationName,
		LocationAddress: body.LocationAddress,
		EstimatedTime:   body.EstimatedTime,
		MaxParticipants: body.MaxParticipants,
	}
	if body.EventURL != nil {
		newURL, err := utils.CanonicalEventURL(*body.EventURL)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid new event url"})
		}
		upd.NewURL = &newURL
	}

	ev, err := h.Events.Update(c.Request().Context(), eventURL, upd)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrEventExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "event url already registered"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update event"})
	}

	publishActivity(queue.ActivityEvent{
		Action:   queue.ActionEventUpdated,
		EventURL: ev.EventURL,
		Username: middleware.Username(c),
	})
	return c.JSON(http.StatusOK, toEventJSON(ev))
}

// DeleteEvent handles DELETE /api/events/:eventUrlEncoded. The event and its
// selection records are soft-deleted in one transaction; the rows stay in
// the database with a delete marker. A second delete yields 404.
func (h *API) DeleteEvent(c echo.Context) error {
	raw, ok := decodeEventURL(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url encoding"})
	}
	eventURL, err := utils.CanonicalEventURL(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url"})
	}

	if err := h.Events.SoftDelete(c.Request().Context(), eventURL); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete event"})
	}

	publishActivity(queue.ActivityEvent{
		Action:   queue.ActionEventDeleted,
		EventURL: eventURL,
		Username: middleware.Username(c),
	})
	return c.NoContent(http.StatusNoContent)
}
