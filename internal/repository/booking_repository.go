package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventsphere/event-booking/internal/model"
)

// BookingRepo owns persistence for the booking workflow. Bookings are
// created pending and transition to approved or rejected under an admin
// action; the status flip and the seat adjustment on the linked event are
// applied inside one transaction so a crash between the two writes can
// never leave them inconsistent. Transition rows are locked with
// SELECT ... FOR UPDATE, which serialises concurrent admin actions on the
// same booking.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span bookings and events.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// Create inserts a new pending booking and populates the generated id,
// reference and timestamps on the passed record. Seats are not touched:
// inventory is reserved only at approval time.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.Reference = uuid.NewString()
	b.Status = model.BookingPending
	const q = `INSERT INTO bookings (reference, event_id, user_id, ticket_type, quantity, total_price, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var eventID interface{}
	if b.EventID != nil {
		eventID = *b.EventID
	}
	res, err := r.db.ExecContext(ctx, q,
		b.Reference, eventID, b.UserID, b.TicketType, b.Quantity, b.TotalPrice, string(b.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, reference, event_id, user_id, ticket_type, quantity, total_price, status, created_at, updated_at
	           FROM bookings WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetForUpdateTx loads a booking inside a transaction with a row lock.
// Concurrent transitions on the same booking block here until the first
// transaction commits, so each one observes the status the previous one
// wrote.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, reference, event_id, user_id, ticket_type, quantity, total_price, status, created_at, updated_at
	           FROM bookings WHERE id = ? FOR UPDATE`
	return r.scanOne(tx.QueryRowContext(ctx, q, id))
}

// rowScanner covers *sql.Row for scanOne.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *BookingRepo) scanOne(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var eventID sql.NullInt64
	var status string
	err := row.Scan(
		&b.ID, &b.Reference, &eventID, &b.UserID, &b.TicketType,
		&b.Quantity, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if eventID.Valid {
		eid := uint64(eventID.Int64)
		b.EventID = &eid
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

// UpdateStatusTx flips the booking status within the caller's transaction.
// The caller is responsible for pairing this with the matching seat
// adjustment before committing.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingDetail is the projection returned by the list endpoints: the
// booking itself plus the linked event (when any) and limited user fields
// for display. Password hashes and other sensitive columns never leave the
// repository.
type BookingDetail struct {
	ID         uint64   `json:"id"`
	Reference  string   `json:"reference"`
	TicketType string   `json:"ticket_type"`
	Quantity   uint32   `json:"quantity"`
	TotalPrice float64  `json:"total_price"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"created_at"`
	Event      *struct {
		ID             uint64 `json:"id"`
		Title          string `json:"title"`
		Date           string `json:"date"`
		Location       string `json:"location"`
		TotalSeats     uint32 `json:"total_seats"`
		AvailableSeats uint32 `json:"available_seats"`
	} `json:"event,omitempty"`
	User *struct {
		ID    uint64 `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user,omitempty"`
}

const detailQuery = `SELECT b.id, b.reference, b.ticket_type, b.quantity, b.total_price, b.status, b.created_at,
                            e.id, e.title, e.date, e.location, e.total_seats, e.available_seats,
                            u.id, u.name, u.email
                     FROM bookings b
                     LEFT JOIN events e ON e.id = b.event_id
                     JOIN users u ON u.id = b.user_id`

// ListAll returns every booking with event and limited user fields
// resolved, newest first. Used by the admin overview.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` ORDER BY b.created_at DESC`)
}

// ListByUser returns the bookings belonging to one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE b.user_id = ? ORDER BY b.created_at DESC`, userID)
}

func (r *BookingRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var createdAt, eventDate sql.NullTime
		var evID sql.NullInt64
		var evTitle, evLocation sql.NullString
		var evTotal, evAvailable sql.NullInt64
		var uID uint64
		var uName, uEmail string
		if err := rows.Scan(
			&d.ID, &d.Reference, &d.TicketType, &d.Quantity, &d.TotalPrice, &d.Status, &createdAt,
			&evID, &evTitle, &eventDate, &evLocation, &evTotal, &evAvailable,
			&uID, &uName, &uEmail,
		); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			d.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
		}
		if evID.Valid {
			ev := &struct {
				ID             uint64 `json:"id"`
				Title          string `json:"title"`
				Date           string `json:"date"`
				Location       string `json:"location"`
				TotalSeats     uint32 `json:"total_seats"`
				AvailableSeats uint32 `json:"available_seats"`
			}{
				ID:             uint64(evID.Int64),
				Title:          evTitle.String,
				Location:       evLocation.String,
				TotalSeats:     uint32(evTotal.Int64),
				AvailableSeats: uint32(evAvailable.Int64),
			}
			if eventDate.Valid {
				ev.Date = eventDate.Time.UTC().Format(time.RFC3339)
			}
			d.Event = ev
		}
		d.User = &struct {
			ID    uint64 `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}{ID: uID, Name: uName, Email: uEmail}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Count returns the number of bookings for the admin dashboard.
func (r *BookingRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

// IsMissingUserFK reports whether an insert failed because the user id does
// not resolve, so handlers can answer 400 instead of 500.
func IsMissingUserFK(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
