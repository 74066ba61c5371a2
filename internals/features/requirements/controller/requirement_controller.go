package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/requirements/dto"
	"campusvibe_backend/internals/features/requirements/service"
	helper "campusvibe_backend/internals/helpers"
)

type RequirementController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewRequirementController(svc *service.Service) *RequirementController {
	return &RequirementController{Service: svc, Validate: validator.New()}
}

// POST /api/o/requirements/:eventId
func (ctl *RequirementController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.Create(c.UserContext(), actor, eventID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Requirement added and emails sent successfully.", res)
}

// GET /api/a/requirements?status=&event_id=
func (ctl *RequirementController) List(c *fiber.Ctx) error {
	q := dto.ListQuery{Status: c.Query("status")}
	if raw := c.Query("event_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event_id")
		}
		q.EventID = uint(id)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Requirements fetched", rows, &pg)
}

// PATCH /api/a/requirements/:id/status
func (ctl *RequirementController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	row, err := ctl.Service.UpdateStatus(c.UserContext(), id, req.ApprovalStatus)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Requirement status updated", row)
}
