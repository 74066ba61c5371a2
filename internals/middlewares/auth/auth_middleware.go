package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "campusvibe_backend/internals/features/users/auth/service"
	helper "campusvibe_backend/internals/helpers"
)

// Protect authenticates the bearer token and applies the access lifecycle
// gate: Guest is rejected, an expired user is demoted to Guest before the
// rejection is returned. The validated user is stored in Locals.
func Protect(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)

		user, err := authService.Authenticate(c.UserContext(), db, raw)
		if err != nil {
			if code := helper.ErrorCode(err); code != helper.CodeUnauthorized {
				log.Printf("[AUTH] %s %s rejected: %s", c.Method(), c.Path(), code)
			}
			return helper.FromFiberError(c, err)
		}

		c.Locals(helper.LocRawToken, raw)
		c.Locals(helper.LocUserID, user.ID)
		c.Locals(helper.LocUserRole, user.Role)
		c.Locals(helper.LocUser, user)
		return c.Next()
	}
}
