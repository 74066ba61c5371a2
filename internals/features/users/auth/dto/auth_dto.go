package dto

import (
	"time"

	userModel "campusvibe_backend/internals/features/users/user/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type LoginResponse struct {
	Token              string     `json:"token"`
	ExpiresAt          time.Time  `json:"expires_at"`
	ID                 uint       `json:"id"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	MustChangePassword bool       `json:"must_change_password"`
	AccessExpiryDate   *time.Time `json:"access_expiry_date,omitempty"`
}

func NewLoginResponse(token string, exp time.Time, u *userModel.UserModel) LoginResponse {
	return LoginResponse{
		Token:              token,
		ExpiresAt:          exp,
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		AccessExpiryDate:   u.AccessExpiryDate,
	}
}
