package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/event_requests/controller"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/middlewares"
)

func EventRequestPublicRoutes(public fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewEventRequestController(db, notifier)
	public.Post("/event-requests", middlewares.SubmissionRateLimiter(), ctl.Submit)
}

func EventRequestAdminRoutes(admin fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewEventRequestController(db, notifier)

	g := admin.Group("/requests")
	g.Get("/", ctl.ListPendingAdmin)
	g.Post("/:id/approve", ctl.AdminApprove)
	g.Post("/:id/reject", ctl.AdminReject)
}

// EventRequestOrganizerRoutes is for fest organizers deciding sub-event requests.
func EventRequestOrganizerRoutes(org fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewEventRequestController(db, notifier)

	g := org.Group("/requests")
	g.Get("/pending", ctl.ListPendingForOrganizer)
	g.Post("/:id/approve", ctl.OrganizerApprove)
	g.Post("/:id/reject", ctl.OrganizerReject)
}
