// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an activity log.
package queue

// Action values published on the schedule.activity queue.
const (
	ActionEventCreated   = "event.created"
	ActionEventUpdated   = "event.updated"
	ActionEventDeleted   = "event.deleted"
	ActionSelectionSaved = "selection.saved"
)

// ActivityEvent is published whenever an event or selection changes. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ActivityEvent struct {
	Action     string `json:"action"`
	EventURL   string `json:"event_url"`
	Username   string `json:"username,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
