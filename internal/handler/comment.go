package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/model"
	"github.com/eventsphere/event-booking/internal/repository"
)

// CommentHandler serves blog comments: public reading and submission plus
// the admin moderation queue. Comments follow the same pending/approved/
// rejected vocabulary as bookings but carry no side effects on transition.
type CommentHandler struct {
	Comments *repository.CommentRepo
	Blogs    *repository.BlogRepo
}

func NewCommentHandler(cm *repository.CommentRepo, b *repository.BlogRepo) *CommentHandler {
	return &CommentHandler{Comments: cm, Blogs: b}
}

type commentReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

type moderateReq struct {
	Status string `json:"status"`
}

type commentResp struct {
	ID        uint64  `json:"id"`
	BlogID    uint64  `json:"blog_id"`
	UserID    *uint64 `json:"user_id,omitempty"`
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func commentJSON(cm *model.Comment) commentResp {
	return commentResp{
		ID:        cm.ID,
		BlogID:    cm.BlogID,
		UserID:    cm.UserID,
		Name:      cm.Name,
		Content:   cm.Content,
		Status:    cm.Status,
		CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListApproved returns the approved comments of one blog post, oldest
// first. Pending and rejected comments are never exposed here.
func (h *CommentHandler) ListApproved(c echo.Context) error {
	blogID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid blog id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Blogs.GetByID(ctx, blogID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}

	comments, err := h.Comments.ListApprovedByBlog(ctx, blogID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]commentResp, 0, len(comments))
	for i := range comments {
		out = append(out, commentJSON(&comments[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Create submits a comment on a blog post. Anyone may comment; logged-in
// users get their id attached. The comment starts pending and shows up
// publicly only after moderation.
func (h *CommentHandler) Create(c echo.Context) error {
	blogID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid blog id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Content = strings.TrimSpace(req.Content)
	if req.Name == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Blogs.GetByID(ctx, blogID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}

	cm := &model.Comment{
		BlogID:  blogID,
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Content: req.Content,
	}
	if uid, err := getUserID(c); err == nil {
		cm.UserID = &uid
	}
	if err := h.Comments.Create(ctx, cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create comment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "comment submitted and awaiting moderation",
		"comment": commentJSON(cm),
	})
}

// ListAll returns the full moderation queue with blog titles, newest
// first.
func (h *CommentHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	comments, err := h.Comments.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	type row struct {
		commentResp
		BlogTitle string `json:"blog_title"`
	}
	out := make([]row, 0, len(comments))
	for i := range comments {
		out = append(out, row{commentJSON(&comments[i].Comment), comments[i].BlogTitle})
	}
	return c.JSON(http.StatusOK, out)
}

// Moderate sets a comment's status to approved or rejected.
func (h *CommentHandler) Moderate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid comment id"})
	}
	var req moderateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != model.CommentApproved && status != model.CommentRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "status must be approved or rejected"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Comments.SetStatus(ctx, id, status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update comment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment " + status})
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid comment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Comments.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete comment"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Count reports the number of comments for the admin dashboard.
func (h *CommentHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Comments.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}
