package handler

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/model"
	"github.com/eventsphere/event-booking/internal/repository"
)

// BookingHandler serves the user-facing booking endpoints. Creating a
// booking never touches seat inventory: every booking starts pending and
// seats move only when an admin approves it.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
}

func NewBookingHandler(b *repository.BookingRepo, e *repository.EventRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Events: e}
}

type createBookingReq struct {
	EventID    *uint64 `json:"event_id"`
	TicketType string  `json:"ticket_type"`
	Quantity   int64   `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// bookingResp is the JSON shape of a single booking.
type bookingResp struct {
	ID         uint64  `json:"id"`
	Reference  string  `json:"reference"`
	EventID    *uint64 `json:"event_id,omitempty"`
	UserID     uint64  `json:"user_id"`
	TicketType string  `json:"ticket_type"`
	Quantity   uint32  `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func bookingJSON(b *model.Booking) bookingResp {
	return bookingResp{
		ID:         b.ID,
		Reference:  b.Reference,
		EventID:    b.EventID,
		UserID:     b.UserID,
		TicketType: b.TicketType,
		Quantity:   b.Quantity,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create books tickets for the authenticated user. The event id may arrive
// as a path parameter or in the body; the path wins when both are present.
// The booking is stored pending and no seat availability is checked here,
// so a request for more tickets than remain is still accepted and left for
// the admin decision.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	eventID := req.EventID
	if raw := c.Param("eventId"); raw != "" {
		id, ok := pathID(c, "eventId")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
		}
		eventID = &id
	}

	req.TicketType = strings.TrimSpace(req.TicketType)
	if req.TicketType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ticket_type is required"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "quantity must be greater than zero"})
	}
	// The column is an unsigned 32-bit int; anything larger would wrap in
	// the conversion below (2^32 stores as 0).
	if req.Quantity > math.MaxUint32 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "quantity is too large"})
	}
	if req.TotalPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "total_price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if eventID != nil {
		if _, err := h.Events.GetByID(ctx, *eventID); err != nil {
			if err == repository.ErrEventNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
		}
	}

	b := &model.Booking{
		EventID:    eventID,
		UserID:     uid,
		TicketType: req.TicketType,
		Quantity:   uint32(req.Quantity),
		TotalPrice: req.TotalPrice,
	}
	if err := h.Bookings.Create(ctx, b); err != nil {
		if repository.IsMissingUserFK(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create booking"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking created and awaiting approval",
		"booking": bookingJSON(b),
	})
}

// Mine lists the authenticated user's bookings, newest first.
func (h *BookingHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// ByUser lists the bookings of an arbitrary user. Non-admin callers may
// only request their own.
func (h *BookingHandler) ByUser(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	target, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	if target != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, target)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, details)
}
