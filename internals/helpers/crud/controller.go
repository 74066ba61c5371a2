package crud

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	helper "campusvibe_backend/internals/helpers"
)

// Creator is a create payload that builds a row.
type Creator[T any] interface {
	ToModel() *T
}

// Patcher is an update payload that lists the columns it sets.
type Patcher interface {
	Changes() map[string]any
}

type Controller[T any, C Creator[T], U Patcher] struct {
	Service  *Service[T]
	Validate *validator.Validate
}

func NewController[T any, C Creator[T], U Patcher](svc *Service[T]) *Controller[T, C, U] {
	return &Controller[T, C, U]{Service: svc, Validate: validator.New()}
}

// Mount registers GET /, GET /:id, POST /, PATCH /:id and DELETE /:id.
func (ctl *Controller[T, C, U]) Mount(r fiber.Router) {
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}

func (ctl *Controller[T, C, U]) key(c *fiber.Ctx) (string, error) {
	key := strings.TrimSpace(c.Params("id"))
	if key == "" {
		return "", helper.ErrValidation("Invalid id")
	}
	if ctl.Service.Res.NumericKey {
		if n, err := strconv.ParseUint(key, 10, 64); err != nil || n == 0 {
			return "", helper.ErrValidation("Invalid id")
		}
	}
	return key, nil
}

func (ctl *Controller[T, C, U]) List(c *fiber.Ctx) error {
	filters := make(map[string]string, len(ctl.Service.Res.Filters))
	for param := range ctl.Service.Res.Filters {
		filters[param] = c.Query(param)
	}
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Service.List(c.UserContext(), c.Query("q"), filters, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, ctl.Service.Res.Name+" list fetched", rows, &pg)
}

func (ctl *Controller[T, C, U]) Get(c *fiber.Ctx) error {
	key, err := ctl.key(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.Service.Get(c.UserContext(), key)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, ctl.Service.Res.Name+" fetched", row)
}

func (ctl *Controller[T, C, U]) Create(c *fiber.Ctx) error {
	var req C
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	row := req.ToModel()
	if err := ctl.Service.Create(c.UserContext(), row); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, ctl.Service.Res.Name+" created", row)
}

func (ctl *Controller[T, C, U]) Update(c *fiber.Ctx) error {
	key, err := ctl.key(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req U
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	row, err := ctl.Service.Update(c.UserContext(), key, req.Changes())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, ctl.Service.Res.Name+" updated", row)
}

func (ctl *Controller[T, C, U]) Delete(c *fiber.Ctx) error {
	key, err := ctl.key(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Service.Delete(c.UserContext(), key); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, ctl.Service.Res.Name+" deleted", fiber.Map{"id": key})
}
