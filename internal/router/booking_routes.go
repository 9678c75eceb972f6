package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/handler"
	"github.com/eventsphere/event-booking/internal/middleware"
	"github.com/eventsphere/event-booking/internal/model"
)

// RegisterBookings registers the user-facing booking endpoints. Any
// authenticated role may create and read its own bookings; reading another
// user's bookings is gated inside the handler.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin, model.RoleSpeaker))

	g.POST("/bookings", b.Create)
	g.POST("/bookings/:eventId", b.Create)
	g.GET("/my-bookings", b.Mine)
	g.GET("/bookings/user/:userId", b.ByUser)
}
