package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/handler"
	"github.com/eventsphere/event-booking/internal/middleware"
	"github.com/eventsphere/event-booking/internal/model"
)

// AdminHandlers bundles the handlers behind the admin role gate.
type AdminHandlers struct {
	Bookings *handler.AdminBookingHandler
	Events   *handler.EventHandler
	Speakers *handler.SpeakerHandler
	Blogs    *handler.BlogHandler
	Comments *handler.CommentHandler
	Contacts *handler.ContactHandler
	About    *handler.AboutHandler
	Users    *handler.UserHandler
}

// RegisterAdmin registers every admin-only endpoint under one group that
// validates the JWT and requires the admin role.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	// Booking workflow: overview plus the two status transitions.
	g.GET("/bookings", h.Bookings.List)
	g.PUT("/bookings/:id/approve", h.Bookings.Approve)
	g.PUT("/bookings/:id/reject", h.Bookings.Reject)

	// Event management. Seat counters are only ever moved by the booking
	// transitions registered above.
	g.POST("/events", h.Events.Create)
	g.PUT("/events/:id", h.Events.Update)
	g.DELETE("/events/:id", h.Events.Delete)
	g.POST("/events/:id/schedules", h.Events.AddSchedule)
	g.PUT("/events/:id/schedules/:sid", h.Events.UpdateSchedule)
	g.DELETE("/events/:id/schedules/:sid", h.Events.DeleteSchedule)

	// Speaker management.
	g.POST("/speakers", h.Speakers.Create)
	g.PUT("/speakers/:id", h.Speakers.Update)
	g.DELETE("/speakers/:id", h.Speakers.Delete)
	g.POST("/speakers/:id/schedules", h.Speakers.AddSchedule)
	g.PUT("/speakers/:id/schedules/:sid", h.Speakers.UpdateSchedule)
	g.DELETE("/speakers/:id/schedules/:sid", h.Speakers.DeleteSchedule)

	// Blog and comment moderation.
	g.POST("/blogs", h.Blogs.Create)
	g.PUT("/blogs/:id", h.Blogs.Update)
	g.DELETE("/blogs/:id", h.Blogs.Delete)
	g.GET("/comments", h.Comments.ListAll)
	g.PUT("/comments/:id/approve", h.Comments.Moderate)
	g.DELETE("/comments/:id", h.Comments.Delete)

	// Contact inbox.
	g.GET("/contacts", h.Contacts.List)
	g.PUT("/contacts/:id/read", h.Contacts.MarkRead)
	g.DELETE("/contacts/:id", h.Contacts.Delete)

	// About page.
	g.PUT("/about", h.About.Upsert)

	// User administration.
	g.GET("/users", h.Users.List)
	g.POST("/users", h.Users.Create)
	g.PUT("/users/:id", h.Users.Update)
	g.DELETE("/users/:id", h.Users.Delete)

	// Dashboard counters.
	counts := g.Group("/admin")
	counts.GET("/bookings/count", h.Bookings.Count)
	counts.GET("/events/count", h.Events.Count)
	counts.GET("/speakers/count", h.Speakers.Count)
	counts.GET("/blogs/count", h.Blogs.Count)
	counts.GET("/comments/count", h.Comments.Count)
	counts.GET("/contacts/count", h.Contacts.Count)
	counts.GET("/users/count", h.Users.Count)
}
