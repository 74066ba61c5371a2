package service

import (
	"context"

	"gorm.io/gorm"

	authHelper "campusvibe_backend/internals/features/users/auth/helper"
	authRepo "campusvibe_backend/internals/features/users/auth/repository"
	helper "campusvibe_backend/internals/helpers"
)

// ChangePassword verifies the current credential, stores the new hash and
// clears the must-change-password gate.
func ChangePassword(ctx context.Context, db *gorm.DB, userID uint, oldPassword, newPassword string) error {
	user, err := authRepo.FindUserByID(db.WithContext(ctx), userID)
	if err != nil {
		return helper.ErrNotFound("User not found")
	}
	if err := authHelper.CheckPasswordHash(user.PasswordHash, oldPassword); err != nil {
		return helper.ErrAuthentication("Current password incorrect")
	}
	if oldPassword == newPassword {
		return helper.ErrValidation("New password must differ from the current password")
	}

	hash, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return helper.ErrTransaction("Failed to hash new password", err)
	}
	if err := authRepo.UpdateUserPassword(db.WithContext(ctx), userID, hash); err != nil {
		return helper.ErrTransaction("Failed to update password", err)
	}
	return nil
}
