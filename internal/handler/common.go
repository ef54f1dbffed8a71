package handler // handler defines http handlers

import (
	"net/url" // url decodes the percent-encoded event URL path parameter
	"time"    // time validates and formats event dates

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/nazosched/schedule-coordinator/internal/repository" // repository holds the data access layer
	"github.com/nazosched/schedule-coordinator/internal/slotsource" // slotsource talks to the external booking platform
)

// API bundles the repositories and the slot source client used by every
// endpoint of the scheduling API.
type API struct {
	Events       *repository.EventRepo     // Events provides event persistence
	Selections   *repository.SelectionRepo // Selections provides selection persistence
	Slots        *slotsource.Client        // Slots fetches canonical slot lists from the booking platform
	FetchTimeout time.Duration             // FetchTimeout bounds the generic fetch-html proxy
}

// NewAPI constructs an API handler and panics if a dependency is missing.
func NewAPI(events *repository.EventRepo, selections *repository.SelectionRepo, slots *slotsource.Client, fetchTimeout time.Duration) *API {
	if events == nil || selections == nil || slots == nil {
		panic("nil dependency passed to NewAPI")
	}
	return &API{
		Events:       events,
		Selections:   selections,
		Slots:        slots,
		FetchTimeout: fetchTimeout,
	}
}

// decodeEventURL extracts and percent-decodes the event URL path parameter.
func decodeEventURL(c echo.Context) (string, bool) {
	raw, err := url.PathUnescape(c.Param("eventUrlEncoded"))
	if err != nil || raw == "" {
		return "", false
	}
	return raw, true
}

// validDate reports whether a value is a well-formed YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// dateAfter reports whether start sorts after end. Both arguments must have
// passed validDate; YYYY-MM-DD strings compare correctly as strings.
func dateAfter(start, end string) bool {
	return start > end
}

// eventJSON is the wire representation of an event. Optional columns keep
// explicit null so the frontend can distinguish unset from empty.
type eventJSON struct {
	EventURL        string  `json:"eventUrl"`
	Name            *string `json:"name"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	LocationUID     *string `json:"locationUid"`
	LocationName    *string `json:"locationName,omitempty"`
	LocationAddress *string `json:"locationAddress,omitempty"`
	EstimatedTime   *string `json:"estimatedTime,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// eventListItemJSON extends eventJSON with the per-caller annotations of the
// listing endpoint.
type eventListItemJSON struct {
	eventJSON
	SubmissionCount int  `json:"submissionCount"`
	HasSubmitted    bool `json:"hasSubmitted"`
}

func toEventJSON(e *repository.Event) eventJSON {
	return eventJSON{
		EventURL:        e.EventURL,
		Name:            e.Name,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		LocationUID:     e.LocationUID,
		LocationName:    e.LocationName,
		LocationAddress: e.LocationAddress,
		EstimatedTime:   e.EstimatedTime,
		MaxParticipants: e.MaxParticipants,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
