// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values shared across the event
// and selection repositories so that handlers can map failure scenarios to
// HTTP statuses without inspecting driver errors.
package repository

import (
	"errors"  // errors defines the sentinel values
	"strings" // strings inspects driver error text for duplicate-key codes
)

// ErrEventNotFound is returned when no active event exists for a canonical
// URL. Handlers translate it into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrEventExists is returned when a create or URL rename would collide with
// an event that already holds the canonical URL. Handlers translate it into
// an HTTP 409 response.
var ErrEventExists = errors.New("event url already registered")

// ErrSelectionNotFound is returned when a user has no active selection
// record for an event.
var ErrSelectionNotFound = errors.New("selection not found")

// isDuplicate reports whether a database error is a MySQL duplicate-key
// violation (error 1062), the signal behind the uniqueness invariants.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
