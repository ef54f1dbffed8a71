// Package utils provides small helpers shared across handlers and
// repositories. This file implements canonical event URL normalization and
// the fallback event-name derivation used when an event has no stored name.
package utils

import (
	"errors"  // errors defines the sentinel returned for unparseable URLs
	"net/url" // url parses and rebuilds the event URL
	"strings" // strings provides trimming and replacement helpers
)

// ErrBadEventURL is returned when a supplied event URL cannot be parsed or
// lacks a scheme/host. Handlers translate it into an HTTP 400 response.
var ErrBadEventURL = errors.New("invalid event url")

// CanonicalEventURL normalizes an event URL into its canonical identity:
// scheme + host + path with the query string and fragment stripped and a
// trailing slash enforced. Two URLs differing only in query or fragment
// collapse to the same canonical URL.
func CanonicalEventURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrBadEventURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrBadEventURL
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrBadEventURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}

// EventNameFromURL derives a display name from the last non-empty path
// segment of an event URL, replacing '-' and '_' with spaces. It is used as
// a fallback when the stored event has no name. An unparseable URL yields
// the generic name "event".
func EventNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "event"
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := segments[i]; s != "" {
			s = strings.ReplaceAll(s, "-", " ")
			return strings.ReplaceAll(s, "_", " ")
		}
	}
	return "event"
}
