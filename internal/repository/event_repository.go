package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventsphere/event-booking/internal/model"
)

// EventRepo provides CRUD operations for events and their agenda entries.
// available_seats is special: outside of event creation it moves only via
// the two seat-adjustment methods below, plus the downward clamp in Update
// when capacity shrinks, all expressed as conditional UPDATEs so the
// database applies them atomically. Application code never
// read-modifies-writes the counter; concurrent approvals on the same event
// therefore cannot lose updates or drive the value negative.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span events and bookings.
func (r *EventRepo) DB() *sql.DB { return r.db }

// Create inserts a new event. AvailableSeats always starts equal to
// TotalSeats regardless of what the caller set on the struct. The generated
// id and timestamps are populated on the passed record.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	const q = `INSERT INTO events (title, description, date, location, image, total_seats, available_seats)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		ev.Title, ev.Description, ev.Date.UTC(), ev.Location, ev.Image, ev.TotalSeats, ev.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	ev.AvailableSeats = ev.TotalSeats
	return r.refresh(ctx, ev)
}

// refresh reloads timestamps and defaults after an insert or update.
func (r *EventRepo) refresh(ctx context.Context, ev *model.Event) error {
	const sel = `SELECT created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, ev.ID).Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT id, title, description, date, location, image, total_seats, available_seats, created_at, updated_at
	           FROM events WHERE id = ?`
	var ev model.Event
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Location, &ev.Image,
		&ev.TotalSeats, &ev.AvailableSeats, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ExistsTx reports whether an event row exists, within a transaction.
func (r *EventRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all events ordered by date ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT id, title, description, date, location, image, total_seats, available_seats, created_at, updated_at
	           FROM events ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Location, &ev.Image,
			&ev.TotalSeats, &ev.AvailableSeats, &ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// updateEventQuery shrinks available_seats alongside a capacity shrink:
// lowering total_seats below the current availability must not leave
// available_seats > total_seats, and the repair has to happen in the same
// statement or a concurrent approval could observe the broken row.
const updateEventQuery = `UPDATE events
           SET title = ?, description = ?, date = ?, location = ?, image = ?, total_seats = ?,
               available_seats = LEAST(available_seats, ?)
           WHERE id = ?`

// Update modifies the editable fields of an event. The booking workflow
// owns available_seats; the only write here is the LEAST() clamp that
// keeps availability within a shrunken capacity. Returns ErrEventNotFound
// when no row matches.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
	res, err := r.db.ExecContext(ctx, updateEventQuery,
		ev.Title, ev.Description, ev.Date.UTC(), ev.Location, ev.Image, ev.TotalSeats, ev.TotalSeats, ev.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 affected rows for no-change updates too, so
		// distinguish a missing row explicitly.
		ok, err := r.exists(ctx, ev.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEventNotFound
		}
	}
	return r.refresh(ctx, ev)
}

func (r *EventRepo) exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes an event and cascades to its schedules via FK. Returns
// ErrEventNotFound when no row matches.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Count returns the number of events for the admin dashboard.
func (r *EventRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// ReserveSeatsTx decrements available_seats by qty inside the given
// transaction, clamping at zero. The arithmetic runs in the UPDATE itself:
// under concurrent approvals the database serialises the row change, so the
// counter can never go negative and no decrement is lost.
func (r *EventRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, eventID uint64, qty uint32) error {
	const q = `UPDATE events
	           SET available_seats = CASE WHEN available_seats >= ? THEN available_seats - ? ELSE 0 END
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, qty, qty, eventID)
	if err != nil {
		return err
	}
	return requireEventRow(ctx, tx, res, eventID)
}

// ReleaseSeatsTx increments available_seats by qty inside the given
// transaction, clamping at total_seats so the invariant
// 0 <= available_seats <= total_seats survives any transition history
// (an earlier decrement may have been clamped at zero).
func (r *EventRepo) ReleaseSeatsTx(ctx context.Context, tx *sql.Tx, eventID uint64, qty uint32) error {
	const q = `UPDATE events
	           SET available_seats = LEAST(available_seats + ?, total_seats)
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, qty, eventID)
	if err != nil {
		return err
	}
	return requireEventRow(ctx, tx, res, eventID)
}

// requireEventRow turns a zero-rows-affected seat adjustment into
// ErrEventNotFound, checking for the clamped-no-change case first.
func requireEventRow(ctx context.Context, tx *sql.Tx, res sql.Result, eventID uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// A clamped adjustment of an already-0 (or already-full) counter also
	// affects zero rows; only report not-found when the row is truly gone.
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, eventID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	return err
}

// AddSchedule inserts an agenda entry for an event. The event must exist.
func (r *EventRepo) AddSchedule(ctx context.Context, s *model.EventSchedule) error {
	ok, err := r.exists(ctx, s.EventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEventNotFound
	}
	const q = `INSERT INTO event_schedules (event_id, title, description, starts_at, ends_at, speaker_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	var speakerID interface{}
	if s.SpeakerID != nil {
		speakerID = *s.SpeakerID
	}
	res, err := r.db.ExecContext(ctx, q, s.EventID, s.Title, s.Description, s.StartsAt.UTC(), s.EndsAt.UTC(), speakerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateSchedule modifies an agenda entry scoped to its event. Returns
// sql.ErrNoRows when the entry does not exist under that event.
func (r *EventRepo) UpdateSchedule(ctx context.Context, s *model.EventSchedule) error {
	const q = `UPDATE event_schedules SET title = ?, description = ?, starts_at = ?, ends_at = ?, speaker_id = ?
	           WHERE id = ? AND event_id = ?`
	var speakerID interface{}
	if s.SpeakerID != nil {
		speakerID = *s.SpeakerID
	}
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Description, s.StartsAt.UTC(), s.EndsAt.UTC(), speakerID, s.ID, s.EventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM event_schedules WHERE id = ? AND event_id = ?`, s.ID, s.EventID).Scan(&one)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteSchedule removes an agenda entry scoped to its event. Returns
// sql.ErrNoRows when nothing was deleted.
func (r *EventRepo) DeleteSchedule(ctx context.Context, eventID, scheduleID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM event_schedules WHERE id = ? AND event_id = ?`, scheduleID, eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSchedules returns all agenda entries for an event ordered by start
// time.
func (r *EventRepo) ListSchedules(ctx context.Context, eventID uint64) ([]model.EventSchedule, error) {
	const q = `SELECT id, event_id, title, description, starts_at, ends_at, speaker_id
	           FROM event_schedules WHERE event_id = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventSchedule, 0)
	for rows.Next() {
		var s model.EventSchedule
		var speakerID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.EventID, &s.Title, &s.Description, &s.StartsAt, &s.EndsAt, &speakerID); err != nil {
			return nil, err
		}
		if speakerID.Valid {
			sid := uint64(speakerID.Int64)
			s.SpeakerID = &sid
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
