package user

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	authHelper "campusvibe_backend/internals/features/users/auth/helper"
	authRepo "campusvibe_backend/internals/features/users/auth/repository"
	"campusvibe_backend/internals/features/users/user/model"
)

// SeedAdmin creates the admin account, or promotes and resets an existing
// account with the same email. Admins have no expiry and no password gate.
func SeedAdmin(db *gorm.DB, email, password string) (*model.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("admin password must be at least 8 characters")
	}

	hash, err := authHelper.HashPassword(password)
	if err != nil {
		return nil, err
	}

	existing, err := authRepo.FindUserByEmail(db, email)
	switch {
	case err == nil:
		if err := db.Model(existing).Updates(map[string]any{
			"password_hash":        hash,
			"role":                 constants.RoleAdmin,
			"access_expiry_date":   nil,
			"must_change_password": false,
		}).Error; err != nil {
			return nil, err
		}
		existing.Role = constants.RoleAdmin
		existing.AccessExpiryDate = nil
		existing.MustChangePassword = false
		log.Printf("ℹ️ Admin '%s' already existed, role and password reset", email)
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		u := &model.UserModel{
			Email:        email,
			PasswordHash: hash,
			Role:         constants.RoleAdmin,
		}
		if err := db.Create(u).Error; err != nil {
			return nil, err
		}
		log.Printf("✅ Admin '%s' created", email)
		return u, nil
	default:
		return nil, err
	}
}
