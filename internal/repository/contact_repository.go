package repository

import (
	"context"
	"database/sql"

	"github.com/eventsphere/event-booking/internal/model"
)

// ContactRepo stores messages submitted through the public contact form
// and lets admins work the inbox (read flags, deletion).
type ContactRepo struct {
	db *sql.DB
}

// NewContactRepo returns a new ContactRepo bound to the given database.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts a contact message and populates id and timestamp.
func (r *ContactRepo) Create(ctx context.Context, ct *model.Contact) error {
	const q = `INSERT INTO contacts (name, email, subject, message) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ct.Name, ct.Email, ct.Subject, ct.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ct.ID = uint64(id)
	const sel = `SELECT is_read, created_at FROM contacts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, ct.ID).Scan(&ct.IsRead, &ct.CreatedAt)
}

// List returns all contact messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.Contact, error) {
	const q = `SELECT id, name, email, subject, message, is_read, created_at FROM contacts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Contact, 0)
	for rows.Next() {
		var ct model.Contact
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Email, &ct.Subject, &ct.Message, &ct.IsRead, &ct.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// MarkRead flags a message as handled. Returns sql.ErrNoRows when the
// message does not exist.
func (r *ContactRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET is_read = TRUE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// already-read rows also report zero affected rows
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM contacts WHERE id = ?`, id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a contact message. Returns sql.ErrNoRows when nothing
// was deleted.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
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

// Count returns the number of contact messages for the admin dashboard.
func (r *ContactRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}
