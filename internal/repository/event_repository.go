// This file defines the Event model and repository. An event is identified
// by its canonical URL and is never hard-deleted: deletion sets deleted_at,
// and the active predicate (deleted_at IS NULL) is centralized here instead
// of being repeated across queries in higher layers.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons
	"time"         // time scans DATE/DATETIME columns
)

// Event mirrors the 'events' table. Optional columns use pointers so that
// NULL survives the round trip. StartDate and EndDate are YYYY-MM-DD strings
// as the frontend exchanges them.
type Event struct {
	EventURL        string
	Name            *string
	StartDate       string
	EndDate         string
	LocationUID     *string
	LocationName    *string
	LocationAddress *string
	EstimatedTime   *string
	MaxParticipants *int
	CreatedAt       time.Time
	DeletedAt       *time.Time
}

// EventListItem is an Event annotated for the listing endpoint with the
// number of active submissions and whether the calling user has submitted.
type EventListItem struct {
	Event
	SubmissionCount int
	HasSubmitted    bool
}

// EventUpdate describes a partial update. Nil fields are left untouched.
// NewURL, when set, renames the event and re-keys its selection records.
type EventUpdate struct {
	NewURL          *string
	Name            *string
	StartDate       *string
	EndDate         *string
	LocationUID     *string
	LocationName    *string
	LocationAddress *string
	EstimatedTime   *string
	MaxParticipants *int
}

// EventRepo encapsulates all database queries related to events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `event_url, name, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
	location_uid, location_name, location_address, estimated_time, max_participants, created_at, deleted_at`

// scanEvent reads one row selected with eventColumns into an Event.
func scanEvent(row *sql.Row) (*Event, error) {
	var (
		e       Event
		name    sql.NullString
		locUID  sql.NullString
		locName sql.NullString
		locAddr sql.NullString
		est     sql.NullString
		maxP    sql.NullInt64
		deleted sql.NullTime
	)
	err := row.Scan(&e.EventURL, &name, &e.StartDate, &e.EndDate,
		&locUID, &locName, &locAddr, &est, &maxP, &e.CreatedAt, &deleted)
	if err != nil {
		return nil, err
	}
	e.Name = nullStr(name)
	e.LocationUID = nullStr(locUID)
	e.LocationName = nullStr(locName)
	e.LocationAddress = nullStr(locAddr)
	e.EstimatedTime = nullStr(est)
	if maxP.Valid {
		v := int(maxP.Int64)
		e.MaxParticipants = &v
	}
	if deleted.Valid {
		t := deleted.Time
		e.DeletedAt = &t
	}
	return &e, nil
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// Create registers an event under its canonical URL. If an active event
// already holds the URL it returns ErrEventExists. If a soft-deleted row
// holds the URL, that row is overwritten with the new fields, undeleted and
// its creation time reset; created reports whether a brand-new row was
// inserted (201) as opposed to a revival (200).
func (r *EventRepo) Create(ctx context.Context, e *Event) (created bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var deleted sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT deleted_at FROM events WHERE event_url = ? FOR UPDATE`, e.EventURL).Scan(&deleted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (event_url, name, start_date, end_date, location_uid,
			                     location_name, location_address, estimated_time, max_participants)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.EventURL, e.Name, e.StartDate, e.EndDate, e.LocationUID,
			e.LocationName, e.LocationAddress, e.EstimatedTime, e.MaxParticipants)
		if isDuplicate(err) {
			err = ErrEventExists
		}
		if err != nil {
			return false, err
		}
		created = true
	case err != nil:
		return false, err
	case !deleted.Valid:
		err = ErrEventExists
		return false, err
	default:
		// Revive the soft-deleted holder, overwriting every mutable field.
		_, err = tx.ExecContext(ctx,
			`UPDATE events
			 SET name = ?, start_date = ?, end_date = ?, location_uid = ?,
			     location_name = ?, location_address = ?, estimated_time = ?,
			     max_participants = ?, created_at = CURRENT_TIMESTAMP, deleted_at = NULL
			 WHERE event_url = ?`,
			e.Name, e.StartDate, e.EndDate, e.LocationUID,
			e.LocationName, e.LocationAddress, e.EstimatedTime,
			e.MaxParticipants, e.EventURL)
		if err != nil {
			return false, err
		}
	}

	// Follow-up SELECT so callers receive a fully populated record.
	fresh, err := scanEvent(tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_url = ?`, e.EventURL))
	if err != nil {
		return false, err
	}
	*e = *fresh
	return created, nil
}

// GetByURL fetches an event by canonical URL. Soft-deleted rows are excluded
// unless includeDeleted is set. ErrEventNotFound is returned when no
// matching row exists.
func (r *EventRepo) GetByURL(ctx context.Context, eventURL string, includeDeleted bool) (*Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE event_url = ?`
	if !includeDeleted {
		q += ` AND deleted_at IS NULL`
	}
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, eventURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all active events ordered by creation time descending, each
// annotated with its active submission count and whether the given username
// has an active submission. An empty username leaves HasSubmitted false.
func (r *EventRepo) List(ctx context.Context, username string) ([]*EventListItem, error) {
	const q = `SELECT e.event_url, e.name, DATE_FORMAT(e.start_date, '%Y-%m-%d'), DATE_FORMAT(e.end_date, '%Y-%m-%d'),
	       e.location_uid, e.location_name, e.location_address, e.estimated_time, e.max_participants, e.created_at,
	       (SELECT COUNT(*) FROM user_event_selections s
	        WHERE s.event_url = e.event_url AND s.deleted_at IS NULL) AS submission_count,
	       (SELECT COUNT(*) FROM user_event_selections s
	        WHERE s.event_url = e.event_url AND s.username = ? AND s.deleted_at IS NULL) AS mine
	FROM events e
	WHERE e.deleted_at IS NULL
	ORDER BY e.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*EventListItem{}
	for rows.Next() {
		var (
			it      EventListItem
			name    sql.NullString
			locUID  sql.NullString
			locName sql.NullString
			locAddr sql.NullString
			est     sql.NullString
			maxP    sql.NullInt64
			mine    int
		)
		if err := rows.Scan(&it.EventURL, &name, &it.StartDate, &it.EndDate,
			&locUID, &locName, &locAddr, &est, &maxP, &it.CreatedAt,
			&it.SubmissionCount, &mine); err != nil {
			return nil, err
		}
		it.Name = nullStr(name)
		it.LocationUID = nullStr(locUID)
		it.LocationName = nullStr(locName)
		it.LocationAddress = nullStr(locAddr)
		it.EstimatedTime = nullStr(est)
		if maxP.Valid {
			v := int(maxP.Int64)
			it.MaxParticipants = &v
		}
		it.HasSubmitted = mine > 0
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update to an active event. A URL rename requires
// the target URL to be free among active events and re-keys every selection
// record (active or deleted) to the new URL inside the same transaction, so
// a rename either fully happens or leaves no trace.
func (r *EventRepo) Update(ctx context.Context, eventURL string, upd EventUpdate) (ev *Event, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
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
		`SELECT 1 FROM events WHERE event_url = ? AND deleted_at IS NULL FOR UPDATE`, eventURL).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrEventNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	targetURL := eventURL
	if upd.NewURL != nil && *upd.NewURL != eventURL {
		targetURL = *upd.NewURL
		var clash int
		err = tx.QueryRowContext(ctx,
			`SELECT 1 FROM events WHERE event_url = ? AND deleted_at IS NULL`, targetURL).Scan(&clash)
		if err == nil {
			err = ErrEventExists
			return nil, err
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		err = nil
	}

	set := []string{}
	args := []any{}
	add := func(col string, val any) {
		set = append(set, col+" = ?")
		args = append(args, val)
	}
	if targetURL != eventURL {
		add("event_url", targetURL)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.LocationUID != nil {
		add("location_uid", *upd.LocationUID)
	}
	if upd.LocationName != nil {
		add("location_name", *upd.LocationName)
	}
	if upd.LocationAddress != nil {
		add("location_address", *upd.LocationAddress)
	}
	if upd.EstimatedTime != nil {
		add("estimated_time", *upd.EstimatedTime)
	}
	if upd.MaxParticipants != nil {
		add("max_participants", *upd.MaxParticipants)
	}
	if len(set) == 0 {
		// Nothing to change; return the current row.
		ev, err = scanEvent(tx.QueryRowContext(ctx,
			`SELECT `+eventColumns+` FROM events WHERE event_url = ?`, eventURL))
		return ev, err
	}

	q := "UPDATE events SET " + set[0]
	for _, s := range set[1:] {
		q += ", " + s
	}
	q += " WHERE event_url = ? AND deleted_at IS NULL"
	args = append(args, eventURL)
	_, err = tx.ExecContext(ctx, q, args...)
	if isDuplicate(err) {
		// A soft-deleted row still holds the rename target.
		err = ErrEventExists
	}
	if err != nil {
		return nil, err
	}

	if targetURL != eventURL {
		if _, err = tx.ExecContext(ctx,
			`UPDATE user_event_selections SET event_url = ? WHERE event_url = ?`,
			targetURL, eventURL); err != nil {
			return nil, err
		}
	}

	ev, err = scanEvent(tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_url = ?`, targetURL))
	return ev, err
}

// SoftDelete marks an active event deleted and cascades the marker to its
// active selection records within one transaction. ErrEventNotFound is
// returned when the event is missing or already deleted.
func (r *EventRepo) SoftDelete(ctx context.Context, eventURL string) (err error) {
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

	res, err := tx.ExecContext(ctx,
		`UPDATE events SET deleted_at = CURRENT_TIMESTAMP
		 WHERE event_url = ? AND deleted_at IS NULL`, eventURL)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrEventNotFound
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE user_event_selections SET deleted_at = CURRENT_TIMESTAMP
		 WHERE event_url = ? AND deleted_at IS NULL`, eventURL)
	return err
}
