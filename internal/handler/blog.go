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

// BlogHandler serves public blog reading and admin blog management.
type BlogHandler struct {
	Blogs *repository.BlogRepo
}

func NewBlogHandler(b *repository.BlogRepo) *BlogHandler {
	return &BlogHandler{Blogs: b}
}

type blogReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Photo   string `json:"photo"`
}

type blogResp struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Photo     string `json:"photo"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func blogJSON(b *model.Blog) blogResp {
	return blogResp{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Author:    b.Author,
		Photo:     b.Photo,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns all blog posts, newest first.
func (h *BlogHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	blogs, err := h.Blogs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]blogResp, 0, len(blogs))
	for i := range blogs {
		out = append(out, blogJSON(&blogs[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single blog post.
func (h *BlogHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid blog id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, blogJSON(b))
}

// Create publishes a new blog post.
func (h *BlogHandler) Create(c echo.Context) error {
	var req blogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b := &model.Blog{Title: req.Title, Content: req.Content, Author: req.Author, Photo: req.Photo}
	if err := h.Blogs.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create blog"})
	}
	return c.JSON(http.StatusCreated, blogJSON(b))
}

// Update edits a blog post.
func (h *BlogHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid blog id"})
	}
	var req blogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b := &model.Blog{ID: id, Title: req.Title, Content: req.Content, Author: req.Author, Photo: req.Photo}
	if err := h.Blogs.Update(ctx, b); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update blog"})
	}
	full, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, blogJSON(full))
}

// Delete removes a blog post and its comments.
func (h *BlogHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid blog id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Blogs.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete blog"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Count reports the number of blog posts for the admin dashboard.
func (h *BlogHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Blogs.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}
