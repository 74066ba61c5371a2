package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/archives/controller"
	"campusvibe_backend/internals/features/archives/service"
)

func ArchivePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewArchiveController(service.New(db))

	r.Get("/students/:studentId/history", ctl.StudentHistory)
}

func ArchiveAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewArchiveController(service.New(db))

	g := admin.Group("/archives")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}
