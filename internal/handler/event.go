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

// EventHandler serves public event browsing and admin event management.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

type eventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // RFC3339
	Location    string `json:"location"`
	Image       string `json:"image"`
	TotalSeats  int64  `json:"total_seats"`
}

type eventResp struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	Image          string `json:"image"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats uint32 `json:"available_seats"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func eventJSON(ev *model.Event) eventResp {
	return eventResp{
		ID:             ev.ID,
		Title:          ev.Title,
		Description:    ev.Description,
		Date:           ev.Date.UTC().Format(time.RFC3339),
		Location:       ev.Location,
		Image:          ev.Image,
		TotalSeats:     ev.TotalSeats,
		AvailableSeats: ev.AvailableSeats,
		CreatedAt:      ev.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      ev.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type scheduleReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartsAt    string  `json:"starts_at"` // RFC3339
	EndsAt      string  `json:"ends_at"`   // RFC3339
	SpeakerID   *uint64 `json:"speaker_id"`
}

type scheduleResp struct {
	ID          uint64  `json:"id"`
	EventID     uint64  `json:"event_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	SpeakerID   *uint64 `json:"speaker_id,omitempty"`
}

func scheduleJSON(s model.EventSchedule) scheduleResp {
	return scheduleResp{
		ID:          s.ID,
		EventID:     s.EventID,
		Title:       s.Title,
		Description: s.Description,
		StartsAt:    s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      s.EndsAt.UTC().Format(time.RFC3339),
		SpeakerID:   s.SpeakerID,
	}
}

func (r *eventReq) validate() (time.Time, string) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return time.Time{}, "title is required"
	}
	if r.TotalSeats <= 0 {
		return time.Time{}, "total_seats must be greater than zero"
	}
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}, "date must be RFC3339"
	}
	return date, ""
}

// List returns all events ordered by date.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]eventResp, 0, len(events))
	for i := range events {
		out = append(out, eventJSON(&events[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one event with its agenda.
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	schedules, err := h.Events.ListSchedules(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	scheds := make([]scheduleResp, 0, len(schedules))
	for _, s := range schedules {
		scheds = append(scheds, scheduleJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"event": eventJSON(ev), "schedules": scheds})
}

// Create adds a new event. available_seats starts equal to total_seats.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	date, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Image:       req.Image,
		TotalSeats:  uint32(req.TotalSeats),
	}
	if err := h.Events.Create(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create event"})
	}
	return c.JSON(http.StatusCreated, eventJSON(ev))
}

// Update edits an event's fields. The booking workflow owns
// available_seats; the repository only clamps it down when total_seats
// shrinks below the current availability.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	date, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev := &model.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Image:       req.Image,
		TotalSeats:  uint32(req.TotalSeats),
	}
	if err := h.Events.Update(ctx, ev); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update event"})
	}
	// Reload so the response carries the current seat counters.
	full, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, eventJSON(full))
}

// Delete removes an event and its agenda.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete event"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Count reports the number of events for the admin dashboard.
func (h *EventHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Events.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func (r *scheduleReq) validate() (time.Time, time.Time, string) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return time.Time{}, time.Time{}, "title is required"
	}
	starts, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return time.Time{}, time.Time{}, "starts_at must be RFC3339"
	}
	ends, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return time.Time{}, time.Time{}, "ends_at must be RFC3339"
	}
	if !ends.After(starts) {
		return time.Time{}, time.Time{}, "ends_at must be after starts_at"
	}
	return starts, ends, ""
}

// AddSchedule appends an agenda entry to an event.
func (h *EventHandler) AddSchedule(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	starts, ends, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s := &model.EventSchedule{
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    starts,
		EndsAt:      ends,
		SpeakerID:   req.SpeakerID,
	}
	if err := h.Events.AddSchedule(ctx, s); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not add schedule"})
	}
	return c.JSON(http.StatusCreated, scheduleJSON(*s))
}

// UpdateSchedule edits an agenda entry, scoped to its event.
func (h *EventHandler) UpdateSchedule(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	scheduleID, ok := pathID(c, "sid")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid schedule id"})
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	starts, ends, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s := &model.EventSchedule{
		ID:          scheduleID,
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    starts,
		EndsAt:      ends,
		SpeakerID:   req.SpeakerID,
	}
	if err := h.Events.UpdateSchedule(ctx, s); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update schedule"})
	}
	return c.JSON(http.StatusOK, scheduleJSON(*s))
}

// DeleteSchedule removes an agenda entry, scoped to its event.
func (h *EventHandler) DeleteSchedule(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	scheduleID, ok := pathID(c, "sid")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid schedule id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.DeleteSchedule(ctx, eventID, scheduleID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete schedule"})
	}
	return c.NoContent(http.StatusNoContent)
}
