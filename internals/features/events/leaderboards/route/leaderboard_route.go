package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/events/leaderboards/controller"
	"campusvibe_backend/internals/features/events/leaderboards/service"
)

func LeaderboardOrganizerRoutes(org fiber.Router, db *gorm.DB) {
	ctl := controller.NewLeaderboardController(service.New(db))

	org.Get("/events/:eventId/leaderboard", ctl.Standings)
	org.Put("/events/:eventId/leaderboard", ctl.Update)
}
