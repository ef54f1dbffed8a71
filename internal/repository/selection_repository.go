// This file defines the Selection model and repository. A selection record
// stores one user's per-slot availability payload for one event as free-form
// JSON; at most one active record exists per (username, event_url), enforced
// by a unique key plus the upsert-and-undelete lifecycle.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons
	"time"         // time scans timestamp columns
)

// Selection mirrors the 'user_event_selections' table. Payload is the raw
// selections JSON exactly as stored; interpretation of its shape belongs to
// the summary package.
type Selection struct {
	Username  string
	EventURL  string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// SelectionRepo encapsulates all database queries related to selections.
type SelectionRepo struct {
	db *sql.DB
}

// NewSelectionRepo constructs a SelectionRepo with the provided DB handle.
func NewSelectionRepo(db *sql.DB) *SelectionRepo {
	return &SelectionRepo{db: db}
}

// Upsert stores a user's selections for an event, overwriting any previous
// record and clearing its delete marker. The active-event existence check
// and the write share one transaction: saving against a missing or deleted
// event fails with ErrEventNotFound and changes nothing.
func (r *SelectionRepo) Upsert(ctx context.Context, username, eventURL string, payload []byte) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM events WHERE event_url = ? AND deleted_at IS NULL`, eventURL).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrEventNotFound
		return err
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_event_selections (username, event_url, selections_json)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE selections_json = VALUES(selections_json),
		                         updated_at = CURRENT_TIMESTAMP,
		                         deleted_at = NULL`,
		username, eventURL, payload)
	return err
}

// GetOne fetches a user's active selection record for an event.
// ErrSelectionNotFound is returned when the user has never saved for the
// event or the record was soft-deleted.
func (r *SelectionRepo) GetOne(ctx context.Context, username, eventURL string) (*Selection, error) {
	const q = `SELECT username, event_url, selections_json, created_at, updated_at
	           FROM user_event_selections
	           WHERE username = ? AND event_url = ? AND deleted_at IS NULL`
	var s Selection
	err := r.db.QueryRowContext(ctx, q, username, eventURL).
		Scan(&s.Username, &s.EventURL, &s.Payload, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSelectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByEvent returns every active selection payload for an event keyed by
// username, the aggregation input.
func (r *SelectionRepo) ListByEvent(ctx context.Context, eventURL string) (map[string][]byte, error) {
	const q = `SELECT username, selections_json
	           FROM user_event_selections
	           WHERE event_url = ? AND deleted_at IS NULL`
	rows, err := r.db.QueryContext(ctx, q, eventURL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]byte{}
	for rows.Next() {
		var username string
		var payload []byte
		if err := rows.Scan(&username, &payload); err != nil {
			return nil, err
		}
		out[username] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
