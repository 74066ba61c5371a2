package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"gorm.io/gorm"

	"campusvibe_backend/internals/configs"
	database "campusvibe_backend/internals/databases"
	"campusvibe_backend/internals/helpers/metrics"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("CampusVibe API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.GetEnv("APP_ENV", "development"),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	if configs.GetEnv("STORAGE_DRIVER", "local") == "local" {
		app.Static("/uploads", configs.GetEnv("UPLOAD_DIR", "uploads"), fiber.Static{MaxAge: 3600})
	}
}
