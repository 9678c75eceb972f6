package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/model"
	"github.com/eventsphere/event-booking/internal/queue"
	"github.com/eventsphere/event-booking/internal/repository"
	"github.com/eventsphere/event-booking/internal/service"
)

// AdminBookingHandler serves the admin booking overview and the two status
// transitions. Approve and Reject share one code path: the target status
// is run through the transition table, and the resulting seat adjustment is
// applied in the same database transaction that flips the status.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
	// Publish is called after a successful approval. Best effort: a nil
	// func disables publishing and errors are ignored.
	Publish func(ctx context.Context, ev queue.BookingApprovedEvent) error
}

func NewAdminBookingHandler(b *repository.BookingRepo, e *repository.EventRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Events: e, Publish: service.PublishBookingApproved}
}

// List returns every booking with event and user details, newest first.
func (h *AdminBookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// Count reports the number of bookings for the admin dashboard.
func (h *AdminBookingHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Bookings.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// Approve transitions a booking to approved, reserving seats on the linked
// event.
func (h *AdminBookingHandler) Approve(c echo.Context) error {
	return h.transition(c, model.BookingApproved)
}

// Reject transitions a booking to rejected. Rejecting a previously
// approved booking releases its seats back to the event.
func (h *AdminBookingHandler) Reject(c echo.Context) error {
	return h.transition(c, model.BookingRejected)
}

func (h *AdminBookingHandler) transition(c echo.Context, to model.BookingStatus) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the row so concurrent transitions on the same booking serialize
	// and each one sees the status the previous one committed.
	b, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}

	adj, noop, err := model.PlanTransition(b.Status, to)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"message": "booking is " + string(b.Status) + " and cannot become " + string(to)})
	}
	if noop {
		// Re-applying the current status changes nothing; return the
		// booking as it stands.
		return c.JSON(http.StatusOK, echo.Map{"message": "booking already " + string(to), "booking": bookingJSON(b)})
	}

	if b.EventID != nil {
		switch adj {
		case model.SeatReserve:
			err = h.Events.ReserveSeatsTx(ctx, tx, *b.EventID, b.Quantity)
		case model.SeatRelease:
			err = h.Events.ReleaseSeatsTx(ctx, tx, *b.EventID, b.Quantity)
		}
		if err != nil {
			if err == repository.ErrEventNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not adjust seats"})
		}
	}

	if err := h.Bookings.UpdateStatusTx(ctx, tx, id, to); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update booking"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not commit transaction"})
	}
	committed = true
	b.Status = to
	b.UpdatedAt = time.Now().UTC()

	if to == model.BookingApproved {
		h.publishApproved(ctx, b)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "booking " + string(to), "booking": bookingJSON(b)})
}

// publishApproved emits the booking.approved event. Failures are ignored:
// the transition already committed and must not be reported as failed.
func (h *AdminBookingHandler) publishApproved(ctx context.Context, b *model.Booking) {
	if h.Publish == nil {
		return
	}
	ev := queue.BookingApprovedEvent{
		BookingID:  b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		TicketType: b.TicketType,
		Quantity:   b.Quantity,
		TotalPrice: b.TotalPrice,
		ApprovedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if b.EventID != nil {
		if event, err := h.Events.GetByID(ctx, *b.EventID); err == nil {
			ev.EventID = event.ID
			ev.EventTitle = event.Title
			ev.AvailableSeats = event.AvailableSeats
		}
	}
	_ = h.Publish(ctx, ev)
}
