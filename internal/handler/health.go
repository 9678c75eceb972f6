package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports liveness plus the reachability of the backing
// stores. Redis is optional: a nil client reports "disabled" rather than
// failing the check.
type HealthHandler struct {
	DB    *sql.DB
	Redis *redis.Client
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb}
}

// Check answers 200 when the database responds to a ping and 503 when it
// does not. The Redis state is informational only.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbState := "ok"
	status := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		dbState = "down"
		status = http.StatusServiceUnavailable
	}

	redisState := "disabled"
	if h.Redis != nil {
		redisState = "ok"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			redisState = "down"
		}
	}

	return c.JSON(status, echo.Map{
		"status": dbState,
		"db":     dbState,
		"redis":  redisState,
	})
}
