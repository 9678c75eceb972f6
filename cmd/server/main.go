package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventsphere/event-booking/internal/config"
	"github.com/eventsphere/event-booking/internal/database"
	"github.com/eventsphere/event-booking/internal/handler"
	"github.com/eventsphere/event-booking/internal/middleware"
	"github.com/eventsphere/event-booking/internal/queue"
	"github.com/eventsphere/event-booking/internal/repository"
	"github.com/eventsphere/event-booking/internal/router"
)

func main() {
	// .env is optional; in production the environment is set directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	speakers := repository.NewSpeakerRepo(db)
	blogs := repository.NewBlogRepo(db)
	comments := repository.NewCommentRepo(db)
	contacts := repository.NewContactRepo(db)
	about := repository.NewAboutRepo(db)

	eventH := handler.NewEventHandler(events)
	speakerH := handler.NewSpeakerHandler(speakers)
	blogH := handler.NewBlogHandler(blogs)
	commentH := handler.NewCommentHandler(comments, blogs)
	contactH := handler.NewContactHandler(contacts)
	aboutH := handler.NewAboutHandler(about)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterHealth(e, handler.NewHealthHandler(db, rdb))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings, events), cfg.JWTSecret)
	router.RegisterPublic(e, router.PublicHandlers{
		Events:   eventH,
		Speakers: speakerH,
		Blogs:    blogH,
		Comments: commentH,
		Contacts: contactH,
		About:    aboutH,
	}, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterAdmin(e, router.AdminHandlers{
		Bookings: handler.NewAdminBookingHandler(bookings, events),
		Events:   eventH,
		Speakers: speakerH,
		Blogs:    blogH,
		Comments: commentH,
		Contacts: contactH,
		About:    aboutH,
		Users:    handler.NewUserHandler(cfg, users, tokens),
	}, cfg.JWTSecret)

	// The consumer reconnects forever on its own; it never stops the server.
	go func() {
		if err := queue.StartApprovedConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
