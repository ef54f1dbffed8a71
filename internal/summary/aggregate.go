package summary

import (
	"sort" // sort orders the user list lexicographically

	"github.com/nazosched/schedule-coordinator/internal/utils" // utils derives the fallback event name
)

// EventInfo carries the event metadata echoed into the summary. Dates are
// YYYY-MM-DD strings as stored.
type EventInfo struct {
	URL       string
	Name      string
	StartDate string
	EndDate   string
}

// Summary is the aggregated user x slot attendance view returned by the
// summary endpoint. Field names match the wire format the frontend expects.
type Summary struct {
	EventName         string                       `json:"eventName"`
	EventStartDate    string                       `json:"eventStartDate"`
	EventEndDate      string                       `json:"eventEndDate"`
	AllEventTimeSlots []string                     `json:"allEventTimeSlotsUTC"`
	AllUsers          []string                     `json:"allUsers"`
	UserSelectionsMap map[string]map[string]string `json:"userSelectionsMap"`
}

// Aggregate joins the canonical slot list with every user's raw selection
// payload into a Summary. It is a pure reshape: slots pass through
// unmodified (slots nobody answered still appear), users are sorted, and a
// user whose payload cannot be normalized still appears with an empty map.
// No capacity or status validation happens here.
func Aggregate(event EventInfo, canonicalSlots []string, rawByUser map[string][]byte) Summary {
	users := make([]string, 0, len(rawByUser))
	selections := make(map[string]map[string]string, len(rawByUser))
	for username, raw := range rawByUser {
		users = append(users, username)
		selections[username] = Normalize(raw)
	}
	sort.Strings(users)

	name := event.Name
	if name == "" {
		name = utils.EventNameFromURL(event.URL)
	}

	slots := canonicalSlots
	if slots == nil {
		slots = []string{}
	}

	return Summary{
		EventName:         name,
		EventStartDate:    event.StartDate,
		EventEndDate:      event.EndDate,
		AllEventTimeSlots: slots,
		AllUsers:          users,
		UserSelectionsMap: selections,
	}
}
