// Package summary builds the attendance summary for an event: it normalizes
// the historical selection payload shapes stored per user and joins them with
// the canonical slot list fetched from the external booking platform.
package summary

import (
	"encoding/json" // json decodes the free-form stored payloads
	"log"           // log records data-integrity warnings about bad payloads
)

// Stored selection payloads come in three historical shapes:
//   - a JSON-encoded string wrapping one of the other shapes (oldest writer
//     double-encoded the payload),
//   - a list of {slotTime, status} pairs (current shape; the oldest list
//     writer used event_datetime_utc as the pair key),
//   - a plain object mapping slot timestamp -> status (legacy shape).
// Anything else normalizes to an empty map. A per-user payload never fails
// the caller: malformed data is logged and swallowed.

// pairTimeKeys are the accepted slot-time field names of a pair element,
// tried in order. Adding a historical key is a data change here, not a new
// branch in the decoder.
var pairTimeKeys = []string{"slotTime", "event_datetime_utc"}

// Normalize resolves a raw stored selection payload into a uniform map from
// UTC slot timestamp to status string. Statuses are opaque at this layer; no
// allowed-value validation happens here.
func Normalize(raw []byte) map[string]string {
	out := map[string]string{}
	if len(raw) == 0 {
		return out
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("[summary] unparseable selections payload dropped: %v", err)
		return out
	}

	// A string payload is a JSON blob encoded once more; unwrap it.
	if s, ok := v.(string); ok {
		v = nil
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			log.Printf("[summary] string-encoded selections payload dropped: %v", err)
			return out
		}
	}

	switch t := v.(type) {
	case []any:
		for _, el := range t {
			obj, ok := el.(map[string]any)
			if !ok {
				log.Printf("[summary] selection element is not an object, skipped")
				continue
			}
			slot, ok := pairSlotTime(obj)
			if !ok {
				log.Printf("[summary] selection element without slot time, skipped")
				continue
			}
			status, ok := obj["status"].(string)
			if !ok {
				log.Printf("[summary] selection element without status, skipped")
				continue
			}
			out[slot] = status
		}
	case map[string]any:
		// Legacy shape: direct timestamp -> status map.
		for slot, val := range t {
			if status, ok := val.(string); ok {
				out[slot] = status
			}
		}
	default:
		log.Printf("[summary] selections payload has unsupported shape %T", v)
	}
	return out
}

// pairSlotTime returns the first string value under the accepted slot-time
// keys of a pair element.
func pairSlotTime(obj map[string]any) (string, bool) {
	for _, k := range pairTimeKeys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
