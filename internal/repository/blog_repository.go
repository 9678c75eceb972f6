package repository

import (
	"context"
	"database/sql"

	"github.com/eventsphere/event-booking/internal/model"
)

// BlogRepo provides CRUD operations for blog posts.
type BlogRepo struct {
	db *sql.DB
}

// NewBlogRepo returns a new BlogRepo bound to the given database.
func NewBlogRepo(db *sql.DB) *BlogRepo { return &BlogRepo{db: db} }

// Create inserts a blog post and populates id and timestamps.
func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) error {
	const q = `INSERT INTO blogs (title, content, author, photo) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.Title, b.Content, b.Author, b.Photo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM blogs WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a single blog post or sql.ErrNoRows.
func (r *BlogRepo) GetByID(ctx context.Context, id uint64) (*model.Blog, error) {
	const q = `SELECT id, title, content, author, photo, created_at, updated_at FROM blogs WHERE id = ?`
	var b model.Blog
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Content, &b.Author, &b.Photo, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all blog posts, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	const q = `SELECT id, title, content, author, photo, created_at, updated_at FROM blogs ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.Photo, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// Update modifies a blog post. Returns sql.ErrNoRows when it does not
// exist.
func (r *BlogRepo) Update(ctx context.Context, b *model.Blog) error {
	const q = `UPDATE blogs SET title = ?, content = ?, author = ?, photo = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, b.Title, b.Content, b.Author, b.Photo, b.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM blogs WHERE id = ?`, b.ID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a blog post and cascades to its comments. Returns
// sql.ErrNoRows when nothing was deleted.
func (r *BlogRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
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

// Count returns the number of blog posts for the admin dashboard.
func (r *BlogRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&n)
	return n, err
}
