package controller

import (
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/events/events/dto"
	"campusvibe_backend/internals/features/events/events/service"
	helper "campusvibe_backend/internals/helpers"
)

type EventController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewEventController(svc *service.Service) *EventController {
	return &EventController{Service: svc, Validate: validator.New()}
}

func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil
	}
	if fh, err := c.FormFile(field); err == nil && fh != nil && fh.Size > 0 {
		return fh
	}
	return nil
}

func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

// GET /api/public/events
func (ctl *EventController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.Service.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Events fetched successfully", rows, &pg)
}

// GET /api/public/events/:id
func (ctl *EventController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ev, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Event fetched successfully", ev)
}

// GET /api/public/events/:id/leaderboard
func (ctl *EventController) Leaderboard(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	board, err := ctl.Service.Leaderboard(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Leaderboard fetched successfully", board)
}

// GET /api/o/events/mine
func (ctl *EventController) Mine(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Service.Mine(c.UserContext(), actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Events fetched successfully", rows)
}

// POST /api/o/events (multipart: fields + banner + paymentQRCodes)
func (ctl *EventController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ev, err := ctl.Service.Create(c.UserContext(), actor, &req, formFile(c, "banner"), formFiles(c, "paymentQRCodes"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Event created successfully", ev)
}

// PATCH /api/o/events/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ev, err := ctl.Service.Update(c.UserContext(), actor, id, &req, formFile(c, "banner"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated successfully", ev)
}

// DELETE /api/o/events/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Service.Delete(c.UserContext(), actor, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted successfully", fiber.Map{"id": id})
}
