package slotsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSlotTimes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name: "Mixed descriptor shapes",
			body: `{"dates":[{"slots":[
				"2024-01-01T12:00:00Z",
				{"startAt":"2024-01-01T10:00:00Z"},
				{"label":"no timestamp here"}
			]}]}`,
			expected: []string{"2024-01-01T10:00:00Z", "2024-01-01T12:00:00Z"},
		},
		{
			name: "Field name drift across date groups",
			body: `{"dates":[
				{"slots":[{"datetime_utc":"2024-01-01T09:00:00Z"}]},
				{"slots":[{"start_time":"2024-01-01T08:00:00Z"}]},
				{"slots":[{"event_datetime_utc":"2024-01-01T07:00:00Z"}]}
			]}`,
			expected: []string{"2024-01-01T07:00:00Z", "2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z"},
		},
		{
			name: "Duplicates are collapsed",
			body: `{"dates":[{"slots":[
				{"startAt":"2024-01-01T10:00:00Z"},
				"2024-01-01T10:00:00Z"
			]}]}`,
			expected: []string{"2024-01-01T10:00:00Z"},
		},
		{
			name:     "Malformed body yields an empty list",
			body:     `not-json`,
			expected: []string{},
		},
		{
			name:     "Missing dates array yields an empty list",
			body:     `{"something":"else"}`,
			expected: []string{},
		},
		{
			name:     "Empty slot groups yield an empty list",
			body:     `{"dates":[{"slots":[]},{"slots":[]}]}`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSlotTimes([]byte(tt.body)))
		})
	}
}

func TestSlotStartTimeKeyPriority(t *testing.T) {
	// datetime_utc outranks startAt when both are present.
	ts, ok := slotStartTime([]byte(`{"startAt":"2024-01-01T10:00:00Z","datetime_utc":"2024-01-01T09:00:00Z"}`))
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01T09:00:00Z", ts)
}
