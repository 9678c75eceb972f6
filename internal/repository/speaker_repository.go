package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/eventsphere/event-booking/internal/model"
)

// SpeakerRepo provides CRUD operations for speaker profiles and their talk
// schedules. Expertise is stored as a comma separated column and split on
// load.
type SpeakerRepo struct {
	db *sql.DB
}

// NewSpeakerRepo returns a new SpeakerRepo bound to the given database.
func NewSpeakerRepo(db *sql.DB) *SpeakerRepo { return &SpeakerRepo{db: db} }

func joinExpertise(expertise []string) string {
	parts := make([]string, 0, len(expertise))
	for _, e := range expertise {
		e = strings.TrimSpace(e)
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, ",")
}

func splitExpertise(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Create inserts a new speaker profile. Duplicate usernames surface as
// ErrUsernameExists, duplicate emails as ErrEmailExists.
func (r *SpeakerRepo) Create(ctx context.Context, s *model.Speaker) error {
	const q = `INSERT INTO speakers (name, username, email, bio, expertise, photo) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Username, strings.ToLower(strings.TrimSpace(s.Email)), s.Bio, joinExpertise(s.Expertise), s.Photo)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "1062") {
			if strings.Contains(low, "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM speakers WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID returns a speaker with schedules resolved, or sql.ErrNoRows.
func (r *SpeakerRepo) GetByID(ctx context.Context, id uint64) (*model.Speaker, error) {
	const q = `SELECT id, name, username, email, bio, expertise, photo, created_at, updated_at
	           FROM speakers WHERE id = ?`
	var s model.Speaker
	var csv string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Username, &s.Email, &s.Bio, &csv, &s.Photo, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Expertise = splitExpertise(csv)
	return &s, nil
}

// List returns all speakers ordered by name.
func (r *SpeakerRepo) List(ctx context.Context) ([]model.Speaker, error) {
	const q = `SELECT id, name, username, email, bio, expertise, photo, created_at, updated_at
	           FROM speakers ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]model.Speaker, 0)
	for rows.Next() {
		var s model.Speaker
		var csv string
		if err := rows.Scan(&s.ID, &s.Name, &s.Username, &s.Email, &s.Bio, &csv, &s.Photo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Expertise = splitExpertise(csv)
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

// Update modifies a speaker profile. Returns sql.ErrNoRows when the row
// does not exist.
func (r *SpeakerRepo) Update(ctx context.Context, s *model.Speaker) error {
	const q = `UPDATE speakers SET name = ?, bio = ?, expertise = ?, photo = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Bio, joinExpertise(s.Expertise), s.Photo, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM speakers WHERE id = ?`, s.ID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a speaker profile and cascades to its schedules. Returns
// sql.ErrNoRows when nothing was deleted.
func (r *SpeakerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM speakers WHERE id = ?`, id)
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

// Count returns the number of speakers for the admin dashboard.
func (r *SpeakerRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM speakers`).Scan(&n)
	return n, err
}

// AddSchedule inserts a talk slot on a speaker's agenda. The speaker must
// exist; a missing speaker surfaces as sql.ErrNoRows.
func (r *SpeakerRepo) AddSchedule(ctx context.Context, s *model.SpeakerSchedule) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM speakers WHERE id = ?`, s.SpeakerID).Scan(&one)
	if err != nil {
		return err
	}
	const q = `INSERT INTO speaker_schedules (speaker_id, title, description, starts_at, ends_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SpeakerID, s.Title, s.Description, s.StartsAt.UTC(), s.EndsAt.UTC())
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

// UpdateSchedule modifies a talk slot scoped to its speaker. Returns
// sql.ErrNoRows when the slot does not exist under that speaker.
func (r *SpeakerRepo) UpdateSchedule(ctx context.Context, s *model.SpeakerSchedule) error {
	const q = `UPDATE speaker_schedules SET title = ?, description = ?, starts_at = ?, ends_at = ?
	           WHERE id = ? AND speaker_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Description, s.StartsAt.UTC(), s.EndsAt.UTC(), s.ID, s.SpeakerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM speaker_schedules WHERE id = ? AND speaker_id = ?`, s.ID, s.SpeakerID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// DeleteSchedule removes a talk slot scoped to its speaker. Returns
// sql.ErrNoRows when nothing was deleted.
func (r *SpeakerRepo) DeleteSchedule(ctx context.Context, speakerID, scheduleID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM speaker_schedules WHERE id = ? AND speaker_id = ?`, scheduleID, speakerID)
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

// ListSchedules returns a speaker's talk slots ordered by start time.
func (r *SpeakerRepo) ListSchedules(ctx context.Context, speakerID uint64) ([]model.SpeakerSchedule, error) {
	const q = `SELECT id, speaker_id, title, description, starts_at, ends_at
	           FROM speaker_schedules WHERE speaker_id = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, speakerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SpeakerSchedule, 0)
	for rows.Next() {
		var s model.SpeakerSchedule
		if err := rows.Scan(&s.ID, &s.SpeakerID, &s.Title, &s.Description, &s.StartsAt, &s.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
