// Package router wires handlers to routes. Route groups carry their
// middleware at construction: auth routes get the JWT middleware, admin
// routes additionally require the admin role, and public browse routes may
// get the response cache.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/handler"
	"github.com/eventsphere/event-booking/internal/middleware"
)

// RegisterHealth exposes the unauthenticated health check.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Check)
}

// RegisterAuth registers the session endpoints. Register, login, refresh
// and logout are open; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Logout with a bearer token revokes every session of the user.
	auth.POST("/logout", a.Logout)
}
