package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/features/users/user/service"
	helper "campusvibe_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/a/users?role=&q=&page=&per_page=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	role := c.Query("role")
	if role != "" && !constants.IsValidRole(role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role filter")
	}

	p := helper.ResolvePaging(c, 20, 100)
	users, total, err := service.ListUsers(c.UserContext(), uc.DB, service.ListFilter{Role: role, Q: c.Query("q")}, p)
	if err != nil {
		log.Println("[ERROR] Failed to fetch users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	pg := helper.BuildPagination(total, p, len(users))
	return helper.JsonList(c, "Users fetched successfully", users, &pg)
}

// POST /api/a/users/:id/revoke
func (uc *UserController) RevokeUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	user, err := service.RevokeUser(c.UserContext(), uc.DB, uint(id), callerID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[USERS] access revoked user=%d by=%d", user.ID, callerID)
	return helper.JsonUpdated(c, "Access revoked", user)
}
