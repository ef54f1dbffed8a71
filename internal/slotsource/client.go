// Package slotsource talks to the external booking platform's slot-listing
// API. The upstream is treated as an opaque, possibly-unstable JSON source:
// its slot-object shape has drifted over time and outages are expected, so
// the summary path degrades to an empty slot list instead of failing.
package slotsource

import (
	"bytes"         // bytes wraps the request payload for POSTing
	"context"       // context carries the request deadline into the outbound call
	"encoding/json" // json encodes the upstream request payload
	"errors"        // errors defines the sentinel for unmatchable event URLs
	"io"            // io drains the upstream response body
	"log"           // log records degraded fetches
	"net/http"      // http issues the outbound call
	"regexp"        // regexp extracts the org/event slugs from the event URL
	"time"          // time bounds the outbound call
)

// ErrInvalidEventURL is returned when an event URL does not contain the
// /org/{orgSlug}/event/{eventSlug} path pattern the upstream requires.
var ErrInvalidEventURL = errors.New("event url does not match org/event pattern")

// slugPattern captures the organization and event slugs from an event URL.
var slugPattern = regexp.MustCompile(`/org/([^/]+)/event/([^/]+)`)

// slotsRequest is the upstream slot-listing payload. LocationAreaUID is
// always serialized as null, matching what the booking platform expects.
type slotsRequest struct {
	OrgSlug         string  `json:"orgSlug"`
	EventSlug       string  `json:"eventSlug"`
	DateFrom        string  `json:"dateFrom"`
	DateTo          string  `json:"dateTo"`
	LocationUID     string  `json:"locationUid"`
	LocationAreaUID *string `json:"locationAreaUid"`
}

// Client issues slot-listing calls against one upstream base URL.
type Client struct {
	base string       // upstream origin, e.g. https://escape.id
	http *http.Client // bounded-timeout HTTP client
}

// New builds a Client for the given upstream origin with a per-call timeout.
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// ParseSlugs extracts the (orgSlug, eventSlug) pair from an event URL.
func ParseSlugs(eventURL string) (orgSlug, eventSlug string, err error) {
	m := slugPattern.FindStringSubmatch(eventURL)
	if len(m) < 3 {
		return "", "", ErrInvalidEventURL
	}
	return m[1], m[2], nil
}

// FetchSlots returns the deduplicated, chronologically sorted UTC start
// timestamps of every bookable slot for the event within the date range.
// Network failures, non-2xx responses and malformed bodies degrade to an
// empty list (logged); only an unmatchable event URL is an error.
func (c *Client) FetchSlots(ctx context.Context, eventURL, dateFrom, dateTo, locationUID string) ([]string, error) {
	status, body, err := c.post(ctx, eventURL, dateFrom, dateTo, locationUID)
	if err != nil {
		if errors.Is(err, ErrInvalidEventURL) {
			return nil, err
		}
		log.Printf("[slots] upstream fetch failed, treating as no known slots: %v", err)
		return []string{}, nil
	}
	if status < 200 || status > 299 {
		log.Printf("[slots] upstream returned status %d, treating as no known slots", status)
		return []string{}, nil
	}
	return extractSlotTimes(body), nil
}

// FetchRaw performs the same upstream call but returns the status and body
// verbatim for the schedule-preview proxy, which propagates upstream errors
// instead of degrading. A transport-level failure is returned as an error.
func (c *Client) FetchRaw(ctx context.Context, eventURL, dateFrom, dateTo, locationUID string) (int, []byte, error) {
	return c.post(ctx, eventURL, dateFrom, dateTo, locationUID)
}

// post issues the slot-listing request. The browser-like headers mirror what
// the booking platform accepts from its own frontend.
func (c *Client) post(ctx context.Context, eventURL, dateFrom, dateTo, locationUID string) (int, []byte, error) {
	orgSlug, eventSlug, err := ParseSlugs(eventURL)
	if err != nil {
		return 0, nil, err
	}
	payload, err := json.Marshal(slotsRequest{
		OrgSlug:     orgSlug,
		EventSlug:   eventSlug,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		LocationUID: locationUID,
	})
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/showcase/event/slots", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36")
	req.Header.Set("Referer", eventURL)
	req.Header.Set("Origin", c.base)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
