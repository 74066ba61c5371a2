package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "campusvibe_backend/internals/features/users/user/controller"
)

// UserAdminRoutes mounts under the admin group (/api/a).
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", userCtrl.GetUsers)
	users.Post("/:id/revoke", userCtrl.RevokeUser)
}
