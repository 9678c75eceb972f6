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

// SpeakerHandler serves public speaker profiles and admin speaker
// management including personal talk schedules.
type SpeakerHandler struct {
	Speakers *repository.SpeakerRepo
}

func NewSpeakerHandler(s *repository.SpeakerRepo) *SpeakerHandler {
	return &SpeakerHandler{Speakers: s}
}

type speakerReq struct {
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio"`
	Expertise []string `json:"expertise"`
	Photo     string   `json:"photo"`
}

type speakerResp struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio"`
	Expertise []string `json:"expertise"`
	Photo     string   `json:"photo"`
	CreatedAt string   `json:"created_at"`
}

func speakerJSON(s *model.Speaker) speakerResp {
	return speakerResp{
		ID:        s.ID,
		Name:      s.Name,
		Username:  s.Username,
		Email:     s.Email,
		Bio:       s.Bio,
		Expertise: s.Expertise,
		Photo:     s.Photo,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type speakerScheduleResp struct {
	ID          uint64 `json:"id"`
	SpeakerID   uint64 `json:"speaker_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}

func speakerScheduleJSON(s model.SpeakerSchedule) speakerScheduleResp {
	return speakerScheduleResp{
		ID:          s.ID,
		SpeakerID:   s.SpeakerID,
		Title:       s.Title,
		Description: s.Description,
		StartsAt:    s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      s.EndsAt.UTC().Format(time.RFC3339),
	}
}

// List returns all speakers ordered by name.
func (h *SpeakerHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	speakers, err := h.Speakers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	out := make([]speakerResp, 0, len(speakers))
	for i := range speakers {
		out = append(out, speakerJSON(&speakers[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one speaker profile with the talk schedule resolved.
func (h *SpeakerHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Speakers.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	schedules, err := h.Speakers.ListSchedules(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	scheds := make([]speakerScheduleResp, 0, len(schedules))
	for _, e := range schedules {
		scheds = append(scheds, speakerScheduleJSON(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"speaker": speakerJSON(s), "schedules": scheds})
}

// Create registers a new speaker profile.
func (h *SpeakerHandler) Create(c echo.Context) error {
	var req speakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, username and email are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s := &model.Speaker{
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Bio:       req.Bio,
		Expertise: req.Expertise,
		Photo:     req.Photo,
	}
	if err := h.Speakers.Create(ctx, s); err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create speaker"})
	}
	return c.JSON(http.StatusCreated, speakerJSON(s))
}

// Update edits a speaker profile. Username and email are immutable.
func (h *SpeakerHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
	}
	var req speakerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s := &model.Speaker{
		ID:        id,
		Name:      req.Name,
		Bio:       req.Bio,
		Expertise: req.Expertise,
		Photo:     req.Photo,
	}
	if err := h.Speakers.Update(ctx, s); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update speaker"})
	}
	full, err := h.Speakers.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, speakerJSON(full))
}

// Delete removes a speaker profile and its talk schedule.
func (h *SpeakerHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Speakers.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete speaker"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Count reports the number of speakers for the admin dashboard.
func (h *SpeakerHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Speakers.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// AddSchedule adds a talk slot to a speaker's agenda.
func (h *SpeakerHandler) AddSchedule(c echo.Context) error {
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
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

	s := &model.SpeakerSchedule{
		SpeakerID:   speakerID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    starts,
		EndsAt:      ends,
	}
	if err := h.Speakers.AddSchedule(ctx, s); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "speaker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not add schedule"})
	}
	return c.JSON(http.StatusCreated, speakerScheduleJSON(*s))
}

// UpdateSchedule edits a talk slot, scoped to its speaker.
func (h *SpeakerHandler) UpdateSchedule(c echo.Context) error {
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
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

	s := &model.SpeakerSchedule{
		ID:          scheduleID,
		SpeakerID:   speakerID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    starts,
		EndsAt:      ends,
	}
	if err := h.Speakers.UpdateSchedule(ctx, s); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update schedule"})
	}
	return c.JSON(http.StatusOK, speakerScheduleJSON(*s))
}

// DeleteSchedule removes a talk slot, scoped to its speaker.
func (h *SpeakerHandler) DeleteSchedule(c echo.Context) error {
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid speaker id"})
	}
	scheduleID, ok := pathID(c, "sid")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid schedule id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Speakers.DeleteSchedule(ctx, speakerID, scheduleID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete schedule"})
	}
	return c.NoContent(http.StatusNoContent)
}
