package model

import "time"

// Blog is a post in the platform's blog section, managed by admins and
// readable by everyone.
type Blog struct {
	ID        uint64    // blogs.id
	Title     string    // blogs.title
	Content   string    // blogs.content
	Author    string    // blogs.author (display name)
	Photo     string    // blogs.photo (URL)
	CreatedAt time.Time // blogs.created_at
	UpdatedAt time.Time // blogs.updated_at
}

// Comment statuses reuse the same three-state moderation vocabulary as
// bookings: comments are created pending and an admin approves or rejects
// them. Only approved comments are shown publicly.
const (
	CommentPending  = "pending"
	CommentApproved = "approved"
	CommentRejected = "rejected"
)

// Comment is a reader comment on a blog post. UserID is nullable because
// anonymous visitors may comment with just a name and email.
type Comment struct {
	ID        uint64    // comments.id
	BlogID    uint64    // comments.blog_id
	UserID    *uint64   // comments.user_id (nullable)
	Name      string    // comments.name
	Email     string    // comments.email
	Content   string    // comments.content
	Status    string    // comments.status (pending/approved/rejected)
	CreatedAt time.Time // comments.created_at
}
