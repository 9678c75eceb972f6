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

// AboutHandler serves the single editable about page.
type AboutHandler struct {
	About *repository.AboutRepo
}

func NewAboutHandler(a *repository.AboutRepo) *AboutHandler {
	return &AboutHandler{About: a}
}

type aboutReq struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
}

type aboutResp struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
	UpdatedAt   string `json:"updated_at"`
}

func aboutJSON(a *model.About) aboutResp {
	return aboutResp{
		Heading:     a.Heading,
		Description: a.Description,
		Mission:     a.Mission,
		Vision:      a.Vision,
		UpdatedAt:   a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Get returns the about page, or 404 while it has never been written.
func (h *AboutHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.About.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "about page not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, aboutJSON(a))
}

// Upsert creates or replaces the about page.
func (h *AboutHandler) Upsert(c echo.Context) error {
	var req aboutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Heading = strings.TrimSpace(req.Heading)
	if req.Heading == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "heading is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a := &model.About{
		Heading:     req.Heading,
		Description: req.Description,
		Mission:     req.Mission,
		Vision:      req.Vision,
	}
	if err := h.About.Upsert(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not save about page"})
	}
	return c.JSON(http.StatusOK, aboutJSON(a))
}
