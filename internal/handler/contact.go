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

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(ct *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: ct}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResp struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func contactJSON(ct *model.Contact) contactResp {
	return contactResp{
		ID:        ct.ID,
		Name:      ct.Name,
		Email:     ct.Email,
		Subject:   ct.Subject,
		Message:   ct.Message,
		IsRead:    ct.IsRead,
		CreatedAt: ct.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create accepts a contact form submission.
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, email and message are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ct := &model.Contact{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := h.Contacts.Create(ctx, ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not save message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "message received", "contact": contactJSON(ct)})
}

// List returns the admin inbox, newest first.
func (h *ContactHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	contacts, err := h.Contacts.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]contactResp, 0, len(contacts))
	for i := range contacts {
		out = append(out, contactJSON(&contacts[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead flags a message as handled.
func (h *ContactHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Contacts.MarkRead(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update contact"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "marked as read"})
}

// Delete removes a contact message.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Contacts.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete contact"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Count reports the number of contact messages for the admin dashboard.
func (h *ContactHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Contacts.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}
