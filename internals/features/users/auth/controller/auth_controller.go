package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/users/auth/dto"
	"campusvibe_backend/internals/features/users/auth/service"
	userModel "campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := service.Login(c.UserContext(), ac.DB, req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[AUTH] login ok user=%d role=%s", res.User.ID, res.User.Role)

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.Token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  res.ExpiresAt,
	})
	return helper.JsonOK(c, "Login successful", dto.NewLoginResponse(res.Token, res.ExpiresAt, res.User))
}

// PUT /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.ChangePassword(c.UserContext(), ac.DB, userID, req.OldPassword, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(helper.LocUser).(*userModel.UserModel)
	if !ok || user == nil {
		return helper.FromFiberError(c, helper.ErrAuthentication("Not authorized"))
	}
	return helper.JsonOK(c, "OK", user)
}
