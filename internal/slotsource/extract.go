package slotsource

import (
	"encoding/json" // json decodes the upstream slot payload
	"log"           // log records descriptors that yield no usable timestamp
	"sort"          // sort orders the extracted timestamps chronologically
)

// slotTimeKeys are the candidate field names for a slot object's UTC start
// time, tried in order. The upstream schema has renamed this field more than
// once; supporting a new historical name is an append here.
var slotTimeKeys = []string{
	"datetime_utc",
	"time_utc",
	"start_utc",
	"start_time",
	"startAt",
	"time",
	"event_datetime_utc",
}

// slotsResponse mirrors the upstream payload: a list of date groups, each
// carrying a list of slot descriptors of varying shape.
type slotsResponse struct {
	Dates []struct {
		Slots []json.RawMessage `json:"slots"`
	} `json:"dates"`
}

// extractSlotTimes pulls every parseable UTC start timestamp out of an
// upstream slot-listing body, deduplicates and sorts them. ISO-8601 UTC
// strings sort chronologically under lexicographic order, so no time parsing
// is needed; slot identity is the literal timestamp string. A malformed body
// yields an empty list.
func extractSlotTimes(body []byte) []string {
	var resp slotsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("[slots] malformed upstream response dropped: %v", err)
		return []string{}
	}
	seen := map[string]bool{}
	out := []string{}
	for _, d := range resp.Dates {
		for _, raw := range d.Slots {
			ts, ok := slotStartTime(raw)
			if !ok {
				log.Printf("[slots] slot descriptor without a usable start time skipped")
				continue
			}
			if !seen[ts] {
				seen[ts] = true
				out = append(out, ts)
			}
		}
	}
	sort.Strings(out)
	return out
}

// slotStartTime extracts the UTC start timestamp from a single slot
// descriptor. A descriptor is either a bare timestamp string or an object
// holding the timestamp under one of the known field names.
func slotStartTime(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	for _, key := range slotTimeKeys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
