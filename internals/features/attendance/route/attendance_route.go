package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/attendance/controller"
	"campusvibe_backend/internals/features/attendance/service"
	"campusvibe_backend/internals/helpers/mailer"
)

func AttendanceOrganizerRoutes(org fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewAttendanceController(service.New(db, notifier))

	org.Post("/attendance/:eventId/send-attendance", ctl.SendReport)
}
