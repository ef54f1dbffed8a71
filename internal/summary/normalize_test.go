package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected map[string]string
	}{
		{
			name:     "Pair list shape",
			raw:      `[{"slotTime":"2024-01-01T10:00:00Z","status":"yes"},{"slotTime":"2024-01-01T11:00:00Z","status":"no"}]`,
			expected: map[string]string{"2024-01-01T10:00:00Z": "yes", "2024-01-01T11:00:00Z": "no"},
		},
		{
			name:     "Legacy pair key event_datetime_utc",
			raw:      `[{"event_datetime_utc":"2024-02-02T09:00:00Z","status":"maybe"}]`,
			expected: map[string]string{"2024-02-02T09:00:00Z": "maybe"},
		},
		{
			name:     "String-encoded blob is unwrapped once",
			raw:      `"[{\"slotTime\":\"2024-01-01T10:00:00Z\",\"status\":\"yes\"}]"`,
			expected: map[string]string{"2024-01-01T10:00:00Z": "yes"},
		},
		{
			name:     "Legacy object shape maps timestamps to statuses",
			raw:      `{"2024-01-01T10:00:00Z":"yes","2024-01-01T11:00:00Z":"no"}`,
			expected: map[string]string{"2024-01-01T10:00:00Z": "yes", "2024-01-01T11:00:00Z": "no"},
		},
		{
			name:     "Object shape skips non-string values",
			raw:      `{"2024-01-01T10:00:00Z":"yes","2024-01-01T11:00:00Z":3}`,
			expected: map[string]string{"2024-01-01T10:00:00Z": "yes"},
		},
		{
			name:     "Malformed elements are skipped individually",
			raw:      `[{"slotTime":"2024-01-01T10:00:00Z","status":"yes"},{"status":"no"},{"slotTime":"2024-01-01T12:00:00Z"},"bare",42]`,
			expected: map[string]string{"2024-01-01T10:00:00Z": "yes"},
		},
		{
			name:     "Not JSON yields an empty map",
			raw:      `not-json`,
			expected: map[string]string{},
		},
		{
			name:     "String-wrapped garbage yields an empty map",
			raw:      `"not-json"`,
			expected: map[string]string{},
		},
		{
			name:     "Null yields an empty map",
			raw:      `null`,
			expected: map[string]string{},
		},
		{
			name:     "Number yields an empty map",
			raw:      `7`,
			expected: map[string]string{},
		},
		{
			name:     "Empty payload yields an empty map",
			raw:      ``,
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize([]byte(tt.raw)))
		})
	}
}

func TestNormalizePrefersSlotTimeOverLegacyKey(t *testing.T) {
	raw := `[{"slotTime":"2024-01-01T10:00:00Z","event_datetime_utc":"2024-12-31T10:00:00Z","status":"yes"}]`
	assert.Equal(t, map[string]string{"2024-01-01T10:00:00Z": "yes"}, Normalize([]byte(raw)))
}
