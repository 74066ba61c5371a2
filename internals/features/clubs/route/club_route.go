package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/clubs/controller"
	"campusvibe_backend/internals/features/clubs/dto"
	"campusvibe_backend/internals/features/clubs/model"
	"campusvibe_backend/internals/features/clubs/service"
	"campusvibe_backend/internals/helpers/crud"
)

func ClubPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewClubController(service.New(db))

	r.Get("/clubs", ctl.List)
	r.Get("/clubs/:id", ctl.Detail)
}

func ClubAdminRoutes(admin fiber.Router, db *gorm.DB) {
	crud.NewController[model.ClubModel, dto.CreateClubRequest, dto.UpdateClubRequest](
		crud.NewService[model.ClubModel](db, crud.Resource{
			Name:    "Club",
			OrderBy: "club_name ASC",
			Search:  []string{"club_name"},
		}),
	).Mount(admin.Group("/clubs"))
}
