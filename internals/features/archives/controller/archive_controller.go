package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/archives/dto"
	"campusvibe_backend/internals/features/archives/service"
	helper "campusvibe_backend/internals/helpers"
)

type ArchiveController struct {
	Service *service.Service
}

func NewArchiveController(svc *service.Service) *ArchiveController {
	return &ArchiveController{Service: svc}
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, helper.ErrValidation("Dates must be YYYY-MM-DD")
	}
	return &t, nil
}

// GET /api/a/archives?q=&from=&to=&page=&per_page=
func (ctl *ArchiveController) List(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.UserContext(), dto.ListQuery{Q: c.Query("q"), From: from, To: to}, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Archives fetched", rows, &pg)
}

// GET /api/a/archives/:id
func (ctl *ArchiveController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	a, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Archive fetched", a)
}

// GET /api/public/students/:studentId/history
func (ctl *ArchiveController) StudentHistory(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("studentId"))
	if studentID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student id is required")
	}
	h, err := ctl.Service.StudentHistory(c.UserContext(), studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Student history fetched", h)
}
