package repository

import (
	"context"
	"database/sql"

	"github.com/eventsphere/event-booking/internal/model"
)

// CommentRepo provides persistence for moderated blog comments. Comments
// are created pending; an admin sets the status to approved or rejected and
// only approved comments are returned by the public listing.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo returns a new CommentRepo bound to the given database.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a pending comment. The blog must exist; the caller checks
// that beforehand to produce a 404.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	cm.Status = model.CommentPending
	const q = `INSERT INTO comments (blog_id, user_id, name, email, content, status) VALUES (?, ?, ?, ?, ?, ?)`
	var userID interface{}
	if cm.UserID != nil {
		userID = *cm.UserID
	}
	res, err := r.db.ExecContext(ctx, q, cm.BlogID, userID, cm.Name, cm.Email, cm.Content, cm.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	const sel = `SELECT created_at FROM comments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, cm.ID).Scan(&cm.CreatedAt)
}

// CommentWithBlog pairs a comment with the title of the post it belongs
// to, for the admin moderation queue.
type CommentWithBlog struct {
	model.Comment
	BlogTitle string
}

// ListAll returns every comment with its blog title, newest first.
func (r *CommentRepo) ListAll(ctx context.Context) ([]CommentWithBlog, error) {
	const q = `SELECT c.id, c.blog_id, c.user_id, c.name, c.email, c.content, c.status, c.created_at, b.title
	           FROM comments c
	           JOIN blogs b ON b.id = c.blog_id
	           ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CommentWithBlog, 0)
	for rows.Next() {
		var cw CommentWithBlog
		var userID sql.NullInt64
		if err := rows.Scan(&cw.ID, &cw.BlogID, &userID, &cw.Name, &cw.Email, &cw.Content, &cw.Status, &cw.CreatedAt, &cw.BlogTitle); err != nil {
			return nil, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			cw.UserID = &uid
		}
		out = append(out, cw)
	}
	return out, rows.Err()
}

// ListApprovedByBlog returns the approved comments of one blog post,
// oldest first (conversation order).
func (r *CommentRepo) ListApprovedByBlog(ctx context.Context, blogID uint64) ([]model.Comment, error) {
	const q = `SELECT id, blog_id, user_id, name, email, content, status, created_at
	           FROM comments WHERE blog_id = ? AND status = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, blogID, model.CommentApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Comment, 0)
	for rows.Next() {
		var cm model.Comment
		var userID sql.NullInt64
		if err := rows.Scan(&cm.ID, &cm.BlogID, &userID, &cm.Name, &cm.Email, &cm.Content, &cm.Status, &cm.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			cm.UserID = &uid
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

// SetStatus moderates a comment. Returns sql.ErrNoRows when the comment
// does not exist.
func (r *CommentRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM comments WHERE id = ?`, id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a comment. Returns sql.ErrNoRows when nothing was
// deleted.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
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

// Count returns the number of comments for the admin dashboard.
func (r *CommentRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n)
	return n, err
}
