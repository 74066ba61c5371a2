package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/requirements/controller"
	"campusvibe_backend/internals/features/requirements/dto"
	"campusvibe_backend/internals/features/requirements/model"
	"campusvibe_backend/internals/features/requirements/service"
	"campusvibe_backend/internals/helpers/crud"
	"campusvibe_backend/internals/helpers/mailer"
)

func RequirementOrganizerRoutes(org fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewRequirementController(service.New(db, notifier))

	org.Post("/requirements/:eventId", ctl.Create)
}

func RequirementAdminRoutes(admin fiber.Router, db *gorm.DB, notifier mailer.Notifier) {
	ctl := controller.NewRequirementController(service.New(db, notifier))

	g := admin.Group("/requirements")
	g.Get("/", ctl.List)
	g.Patch("/:id/status", ctl.UpdateStatus)

	crud.NewController[model.ResourceModel, dto.CreateResourceRequest, dto.UpdateResourceRequest](
		crud.NewService[model.ResourceModel](db, crud.Resource{
			Name:     "Resource",
			OrderBy:  "resource_name ASC",
			Preloads: []string{"Incharge"},
			Search:   []string{"resource_name", "category"},
			Filters:  map[string]string{"category": "category"},
		}),
	).Mount(admin.Group("/resources"))
}
