package helper

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FromFiberError turns an error returned by a service or a Transaction closure
// into the standard JSON envelope.
func FromFiberError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Status >= 500 {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		}
		return JsonErrorCode(c, ae.Status, ae.Code, ae.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, ve)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Record not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return JsonError(c, fiber.StatusConflict, "Duplicate data (unique constraint)")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid reference (foreign key)")
	}

	if status, msg, ok := mapPGError(err); ok {
		return JsonError(c, status, msg)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// ValidationError maps validator.v10 field errors to a 422 envelope.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return JsonValidationError(c, fields)
}

func mapPGError(err error) (int, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return 0, "", false
	}
	switch pgErr.Code {
	case "23505":
		return fiber.StatusConflict, "Duplicate data (unique constraint)", true
	case "23503":
		return fiber.StatusBadRequest, "Invalid reference (foreign key)", true
	case "23514":
		return fiber.StatusBadRequest, "Constraint check failed", true
	}
	return 0, "", false
}
