package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/events/members/controller"
	"campusvibe_backend/internals/features/events/members/service"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
	"campusvibe_backend/internals/middlewares"
)

func MemberPublicRoutes(public fiber.Router, db *gorm.DB, store storage.Store, notifier mailer.Notifier) {
	ctl := controller.NewMemberController(service.New(db, store, notifier))
	public.Post("/register/:eventId/register", middlewares.SubmissionRateLimiter(), ctl.Register)
}

func MemberOrganizerRoutes(org fiber.Router, db *gorm.DB, store storage.Store, notifier mailer.Notifier) {
	ctl := controller.NewMemberController(service.New(db, store, notifier))

	events := org.Group("/events/:eventId")
	events.Get("/members", ctl.List)
	events.Get("/members/export", ctl.Export)
	events.Post("/members", ctl.AddStaff)
	events.Patch("/members/:memberId/check-in", ctl.CheckIn)
	events.Get("/verifications", ctl.PendingVerifications)

	org.Post("/verify-payment", ctl.VerifyPayment)
	org.Post("/reject-payment", ctl.RejectPayment)
}
