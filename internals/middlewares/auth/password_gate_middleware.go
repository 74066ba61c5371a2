package auth

import (
	"github.com/gofiber/fiber/v2"

	userModel "campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
)

// RequirePasswordChanged blocks every action except the password change
// itself while the user still holds a provisioned credential. Mount after Protect.
func RequirePasswordChanged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(helper.LocUser).(*userModel.UserModel)
		if !ok || user == nil {
			return helper.FromFiberError(c, helper.ErrAuthentication("Not authorized"))
		}
		if user.MustChangePassword {
			return helper.FromFiberError(c, helper.ErrPasswordChangeRequired())
		}
		return c.Next()
	}
}
