package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/users/auth/controller"
	rateLimiter "campusvibe_backend/internals/middlewares"
	authMiddleware "campusvibe_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. Login is public; the rest sit behind Protect.
// change-password and me stay reachable while the password gate is active.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	protect := authMiddleware.Protect(db)
	baseAuth.Put("/change-password", protect, authController.ChangePassword)
	baseAuth.Get("/me", protect, authController.Me)
}
