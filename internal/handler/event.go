package handler // handler package contains event CRUD handlers

import (
	"context"  // context detaches best-effort publishes from the request lifetime
	"errors"   // errors compares repository sentinels
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/middleware"
	"github.com/nazosched/schedule-coordinator/internal/queue"
	"github.com/nazosched/schedule-coordinator/internal/repository"
	queue_publisher "github.com/nazosched/schedule-coordinator/internal/service"
	"github.com/nazosched/schedule-coordinator/internal/utils"
)

// ListEvents handles GET /api/events and returns all active events newest
// first, annotated with the submission count and whether the calling user
// has already submitted.
func (h *API) ListEvents(c echo.Context) error {
	items, err := h.Events.List(c.Request().Context(), middleware.Username(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not list events"})
	}
	out := make([]eventListItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, eventListItemJSON{
			eventJSON:       toEventJSON(&it.Event),
			SubmissionCount: it.SubmissionCount,
			HasSubmitted:    it.HasSubmitted,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetEvent handles GET /api/events/:eventUrlEncoded and returns one active
// event or 404.
func (h *API) GetEvent(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toEventJSON(ev))
}

// CreateEvent handles POST /api/events. The supplied URL is canonicalized
// before anything else, so two registrations differing only by query string
// target the same event. A soft-deleted holder of the URL is revived and
// overwritten (200); a brand-new registration returns 201; an active holder
// yields 409.
func (h *API) CreateEvent(c echo.Context) error {
	var body struct {
		EventURL        string  `json:"eventUrl"`
		Name            *string `json:"name"`
		StartDate       string  `json:"startDate"`
		EndDate         string  `json:"endDate"`
		LocationUID     *string `json:"locationUid"`
		LocationName    *string `json:"locationName"`
		LocationAddress *string `json:"locationAddress"`
		EstimatedTime   *string `json:"estimatedTime"`
		MaxParticipants *int    `json:"maxParticipants"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.EventURL) == "" || body.StartDate == "" || body.EndDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "eventUrl, startDate and endDate are required"})
	}
	if !validDate(body.StartDate) || !validDate(body.EndDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "dates must use the YYYY-MM-DD format"})
	}
	if dateAfter(body.StartDate, body.EndDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "endDate must not be before startDate"})
	}
	eventURL, err := utils.CanonicalEventURL(body.EventURL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event url"})
	}

	ev := &repository.Event{
		EventURL:        eventURL,
		Name:            body.Name,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		LocationUID:     body.LocationUID,
		LocationName:    body.LocationName,
		LocationAddress: body.LocationAddress,
		EstimatedTime:   body.EstimatedTime,
		MaxParticipants: body.MaxParticipants,
	}
	created, err := h.Events.Create(c.Request().Context(), ev)
	if err != nil {
		if errors.Is(err, repository.ErrEventExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "event url already registered"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create event"})
	}

	publishActivity(queue.ActivityEvent{
		Action:   queue.ActionEventCreated,
		EventURL: ev.EventURL,
		Username: middleware.Username(c),
	})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, toEventJSON(ev))
}

// publishActivity fires a best-effort activity message. Publishing happens
// off the request goroutine with a background context so broker trouble
// never slows or fails the API response.
func publishActivity(ev queue.ActivityEvent) {
	go func() {
		_ = queue_publisher.PublishActivity(context.Background(), ev)
	}()
}
