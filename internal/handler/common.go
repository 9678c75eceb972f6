// Package handler contains the HTTP handlers for the event-booking API.
// Handlers bind request bodies, run validation, call into the repository
// layer and map sentinel errors onto HTTP statuses. Every error body is an
// object with a human-readable "message" field.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user id stored by the JWT
// middleware. JWT numeric claims decode as float64, but tests and other
// middleware may store native integer types.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the JWT middleware stored the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "admin"
}

// pathID parses a numeric path parameter, returning 0 and false when the
// value is missing or not a positive integer.
func pathID(c echo.Context, name string) (uint64, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
