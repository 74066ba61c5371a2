package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/constants"
)

// Locals keys filled by the auth middleware.
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUser     = "user"
)

// GetRawAccessToken returns the access token from:
// 1) Authorization header "Bearer <token>"
// 2) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	fields := strings.Fields(strings.TrimSpace(c.Get("Authorization")))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetUserIDFromToken reads the authenticated user id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uint, error) {
	switch v := c.Locals(LocUserID).(type) {
	case uint:
		if v == 0 {
			break
		}
		return v, nil
	}
	return 0, ErrAuthentication("Not authorized, no token")
}

// GetUserRole reads the validated role stored by the auth middleware.
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return role
}

// Actor is the authenticated caller as seen by services.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

func GetActor(c *fiber.Ctx) (Actor, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: GetUserRole(c)}, nil
}
