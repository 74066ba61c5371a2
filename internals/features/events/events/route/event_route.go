package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/events/events/controller"
	"campusvibe_backend/internals/features/events/events/service"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
)

func EventPublicRoutes(public fiber.Router, db *gorm.DB, store storage.Store, notifier mailer.Notifier) {
	ctl := controller.NewEventController(service.New(db, store, notifier))

	events := public.Group("/events")
	events.Get("/", ctl.List)
	events.Get("/:id", ctl.Get)
	events.Get("/:id/leaderboard", ctl.Leaderboard)
}

// EventOrganizerRoutes mounts under /api/o. Ownership is checked per event.
func EventOrganizerRoutes(org fiber.Router, db *gorm.DB, store storage.Store, notifier mailer.Notifier) {
	ctl := controller.NewEventController(service.New(db, store, notifier))

	events := org.Group("/events")
	events.Get("/mine", ctl.Mine)
	events.Post("/", ctl.Create)
	events.Patch("/:id", ctl.Update)
	events.Delete("/:id", ctl.Delete)
}
