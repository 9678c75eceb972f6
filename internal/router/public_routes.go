package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/handler"
)

// PublicHandlers bundles the handlers exposed without authentication.
type PublicHandlers struct {
	Events   *handler.EventHandler
	Speakers *handler.SpeakerHandler
	Blogs    *handler.BlogHandler
	Comments *handler.CommentHandler
	Contacts *handler.ContactHandler
	About    *handler.AboutHandler
}

// RegisterPublic registers the unauthenticated browse and submission
// endpoints. The optional cache middleware is applied to the whole group;
// it only acts on the configured methods (GET by default), so the POST
// submissions pass through untouched.
func RegisterPublic(e *echo.Echo, h PublicHandlers, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}

	g.GET("/events", h.Events.List)
	g.GET("/events/:id", h.Events.Get)

	g.GET("/speakers", h.Speakers.List)
	g.GET("/speakers/:id", h.Speakers.Get)

	g.GET("/blogs", h.Blogs.List)
	g.GET("/blogs/:id", h.Blogs.Get)
	g.GET("/blogs/:id/comments", h.Comments.ListApproved)
	g.POST("/blogs/:id/comments", h.Comments.Create)

	g.POST("/contact", h.Contacts.Create)

	g.GET("/about", h.About.Get)
}
