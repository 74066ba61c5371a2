package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"campusvibe_backend/internals/configs"
	"campusvibe_backend/internals/middlewares/logger"
)

// RequestID tags every request and bounds its user context.
func RequestID(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(configs.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second)))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	if configs.GetEnvBool("ACCESS_LOG", false) {
		app.Use(logger.LoggerMiddleware())
	}
}
