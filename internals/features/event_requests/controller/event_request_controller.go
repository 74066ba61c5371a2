package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/event_requests/dto"
	"campusvibe_backend/internals/features/event_requests/service"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

type EventRequestController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewEventRequestController(db *gorm.DB, notifier mailer.Notifier) *EventRequestController {
	return &EventRequestController{Service: service.New(db, notifier), Validate: validator.New()}
}

// POST /api/public/event-requests
func (ctl *EventRequestController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Service.Submit(c.UserContext(), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Event request submitted", m)
}

// GET /api/a/requests
func (ctl *EventRequestController) ListPendingAdmin(c *fiber.Ctx) error {
	rows, err := ctl.Service.ListPendingAdmin(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Pending requests fetched", rows)
}

func (ctl *EventRequestController) parseApprove(c *fiber.Ctx) (dto.ApproveRequest, error) {
	var in dto.ApproveRequest
	if len(c.Body()) == 0 {
		return in, nil
	}
	if err := c.BodyParser(&in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// POST /api/a/requests/:id/approve
func (ctl *EventRequestController) AdminApprove(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := ctl.parseApprove(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Service.AdminApprove(c.UserContext(), id, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Request "+res.Request.Status, res)
}

// POST /api/a/requests/:id/reject
func (ctl *EventRequestController) AdminReject(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Service.AdminReject(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Request rejected", m)
}

// GET /api/o/requests/pending
func (ctl *EventRequestController) ListPendingForOrganizer(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Service.ListPendingForOrganizer(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Pending sub-event requests fetched", rows)
}

// POST /api/o/requests/:id/approve
func (ctl *EventRequestController) OrganizerApprove(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := ctl.parseApprove(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Service.OrganizerApprove(c.UserContext(), userID, id, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Request approved", res)
}

// POST /api/o/requests/:id/reject
func (ctl *EventRequestController) OrganizerReject(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Service.OrganizerReject(c.UserContext(), userID, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Request rejected", m)
}
