package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/events/leaderboards/dto"
	"campusvibe_backend/internals/features/events/leaderboards/service"
	helper "campusvibe_backend/internals/helpers"
)

type LeaderboardController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewLeaderboardController(svc *service.Service) *LeaderboardController {
	return &LeaderboardController{Service: svc, Validate: validator.New()}
}

// PUT /api/o/events/:eventId/leaderboard
func (ctl *LeaderboardController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateLeaderboardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	rows, err := ctl.Service.Update(c.UserContext(), actor, eventID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Leaderboard updated.", rows)
}

// GET /api/o/events/:eventId/leaderboard
func (ctl *LeaderboardController) Standings(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Service.Standings(c.UserContext(), actor, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Leaderboard fetched", rows)
}
