package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "campusvibe_backend/internals/helpers"
)

// OnlyRoles allows the request when the validated role is one of roles.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return helper.FromFiberError(c, helper.ErrAuthentication("Unauthorized: missing role information"))
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		log.Printf("[AUTH] role %s denied for %s %s", role, c.Method(), c.Path())
		return helper.FromFiberError(c, helper.ErrForbidden(message))
	}
}

// OnlyRolesSlice is OnlyRoles for a predefined role set.
func OnlyRolesSlice(message string, allowed []string) fiber.Handler {
	return OnlyRoles(message, allowed...)
}
