package repository

import (
	"context"
	"database/sql"

	"github.com/eventsphere/event-booking/internal/model"
)

// AboutRepo manages the single about-page record. Reads return
// sql.ErrNoRows until the page is first written; writes upsert the row.
type AboutRepo struct {
	db *sql.DB
}

// NewAboutRepo returns a new AboutRepo bound to the given database.
func NewAboutRepo(db *sql.DB) *AboutRepo { return &AboutRepo{db: db} }

// Get returns the about page or sql.ErrNoRows when none exists yet.
func (r *AboutRepo) Get(ctx context.Context) (*model.About, error) {
	const q = `SELECT id, heading, description, mission, vision, updated_at FROM about ORDER BY id ASC LIMIT 1`
	var a model.About
	err := r.db.QueryRowContext(ctx, q).Scan(&a.ID, &a.Heading, &a.Description, &a.Mission, &a.Vision, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert creates the about page on first write and updates it afterwards.
func (r *AboutRepo) Upsert(ctx context.Context, a *model.About) error {
	existing, err := r.Get(ctx)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if existing == nil {
		const ins = `INSERT INTO about (heading, description, mission, vision) VALUES (?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, ins, a.Heading, a.Description, a.Mission, a.Vision)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
	} else {
		const upd = `UPDATE about SET heading = ?, description = ?, mission = ?, vision = ? WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, upd, a.Heading, a.Description, a.Mission, a.Vision, existing.ID); err != nil {
			return err
		}
		a.ID = existing.ID
	}
	const sel = `SELECT updated_at FROM about WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(&a.UpdatedAt)
}

// Count reports whether the about page exists (0 or 1), for the admin
// dashboard.
func (r *AboutRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM about`).Scan(&n)
	return n, err
}
