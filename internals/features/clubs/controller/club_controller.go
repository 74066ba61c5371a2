package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/clubs/service"
	helper "campusvibe_backend/internals/helpers"
)

type ClubController struct {
	Service *service.Service
}

func NewClubController(svc *service.Service) *ClubController {
	return &ClubController{Service: svc}
}

// GET /api/public/clubs
func (ctl *ClubController) List(c *fiber.Ctx) error {
	clubs, err := ctl.Service.List(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Clubs fetched", clubs)
}

// GET /api/public/clubs/:id
func (ctl *ClubController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := ctl.Service.Detail(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Club fetched", detail)
}
