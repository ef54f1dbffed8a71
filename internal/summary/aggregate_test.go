package summary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	event := EventInfo{
		URL:       "https://escape.id/org/acme/event/midnight-heist/",
		Name:      "Midnight Heist",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	}
	slots := []string{"2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z"}
	raw := map[string][]byte{
		"alice": []byte(`[{"slotTime":"2024-01-01T10:00:00Z","status":"yes"}]`),
		"bob":   []byte(`not-json`),
	}

	got := Aggregate(event, slots, raw)

	assert.Equal(t, "Midnight Heist", got.EventName)
	assert.Equal(t, "2024-01-01", got.EventStartDate)
	assert.Equal(t, "2024-01-02", got.EventEndDate)
	assert.Equal(t, []string{"alice", "bob"}, got.AllUsers)
	assert.Equal(t, slots, got.AllEventTimeSlots)
	assert.Equal(t, map[string]string{"2024-01-01T10:00:00Z": "yes"}, got.UserSelectionsMap["alice"])
	assert.Equal(t, map[string]string{}, got.UserSelectionsMap["bob"])
}

func TestAggregateIsIdempotent(t *testing.T) {
	event := EventInfo{URL: "https://escape.id/org/o/event/e/", StartDate: "2024-01-01", EndDate: "2024-01-02"}
	slots := []string{"2024-01-01T10:00:00Z"}
	raw := map[string][]byte{
		"carol": []byte(`{"2024-01-01T10:00:00Z":"yes"}`),
		"dave":  []byte(`[]`),
	}

	first, err := json.Marshal(Aggregate(event, slots, raw))
	require.NoError(t, err)
	second, err := json.Marshal(Aggregate(event, slots, raw))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregateSlotsPassThroughUnmodified(t *testing.T) {
	// Slots nobody answered still appear, in the order given.
	slots := []string{"2024-03-01T09:00:00Z", "2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z"}
	got := Aggregate(EventInfo{URL: "https://x.test/org/a/event/b/"}, slots, map[string][]byte{
		"erin": []byte(`[{"slotTime":"2024-03-01T09:00:00Z","status":"no"}]`),
	})
	assert.Equal(t, slots, got.AllEventTimeSlots)
}

func TestAggregateEmptyInputs(t *testing.T) {
	got := Aggregate(EventInfo{URL: "https://x.test/org/a/event/b/"}, nil, nil)
	assert.Equal(t, []string{}, got.AllEventTimeSlots)
	assert.Empty(t, got.AllUsers)
	assert.Empty(t, got.UserSelectionsMap)
}

func TestAggregateEventNameFallsBackToURL(t *testing.T) {
	got := Aggregate(EventInfo{
		URL:       "https://escape.id/org/acme/event/midnight-heist_v2/",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	}, nil, nil)
	assert.Equal(t, "midnight heist v2", got.EventName)
}

func TestAggregateUsersSortedLexicographically(t *testing.T) {
	raw := map[string][]byte{
		"zoe":     []byte(`[]`),
		"adam":    []byte(`[]`),
		"mallory": []byte(`[]`),
	}
	got := Aggregate(EventInfo{URL: "https://x.test/org/a/event/b/"}, nil, raw)
	assert.Equal(t, []string{"adam", "mallory", "zoe"}, got.AllUsers)
}
