package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	authHelper "campusvibe_backend/internals/features/users/auth/helper"
	authRepo "campusvibe_backend/internals/features/users/auth/repository"
	"campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
)

// Grant describes the access handed out when a request is approved.
type Grant struct {
	Email              string
	Role               string
	EventCreationLimit int
	AccessExpiryDate   *time.Time
}

// ProvisionAccount creates the account for g, or re-activates a Guest
// account with the same email. Any other existing account is a Conflict so
// the caller's transaction rolls back. It must run inside that transaction.
// The returned temporary credential is the only copy and must not be logged.
func ProvisionAccount(tx *gorm.DB, g Grant) (*model.UserModel, string, error) {
	password, err := authHelper.GenerateTemporaryPassword(authHelper.TemporaryPasswordLength)
	if err != nil {
		return nil, "", err
	}
	hash, err := authHelper.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(g.Email))
	var expiry *time.Time
	if g.AccessExpiryDate != nil {
		t := g.AccessExpiryDate.UTC()
		expiry = &t
	}

	user, err := authRepo.FindUserByEmail(tx, email)
	switch {
	case err == nil:
		if user.Role != constants.RoleGuest {
			return nil, "", helper.ErrConflict("An active account already exists for this email")
		}
		res := tx.Model(&model.UserModel{}).
			Where("id = ? AND role = ?", user.ID, constants.RoleGuest).
			Updates(map[string]any{
				"password_hash":        hash,
				"role":                 g.Role,
				"event_creation_limit": g.EventCreationLimit,
				"access_expiry_date":   expiry,
				"must_change_password": true,
			})
		if res.Error != nil {
			return nil, "", res.Error
		}
		if res.RowsAffected == 0 {
			return nil, "", helper.ErrConflict("An active account already exists for this email")
		}
		user.PasswordHash = hash
		user.Role = g.Role
		user.EventCreationLimit = g.EventCreationLimit
		user.AccessExpiryDate = expiry
		user.MustChangePassword = true
		return user, password, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.UserModel{
			Email:              email,
			PasswordHash:       hash,
			Role:               g.Role,
			EventCreationLimit: g.EventCreationLimit,
			AccessExpiryDate:   expiry,
			MustChangePassword: true,
		}
		if err := tx.Create(user).Error; err != nil {
			return nil, "", err
		}
		return user, password, nil
	default:
		return nil, "", err
	}
}

// RevokeByEmail demotes the account with email to Guest. A missing account
// is not an error. Admin accounts are never touched.
func RevokeByEmail(tx *gorm.DB, email string) (bool, error) {
	res := tx.Model(&model.UserModel{}).
		Where("email = ? AND role <> ?", strings.ToLower(strings.TrimSpace(email)), constants.RoleAdmin).
		Updates(map[string]any{
			"role":                 constants.RoleGuest,
			"event_creation_limit": 0,
		})
	return res.RowsAffected > 0, res.Error
}

func RevokeUser(ctx context.Context, db *gorm.DB, userID, callerID uint) (*model.UserModel, error) {
	if userID == callerID {
		return nil, helper.ErrValidation("You cannot revoke your own access")
	}
	var user model.UserModel
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("User not found")
		}
		return nil, err
	}
	if _, err := authRepo.Revoke(db.WithContext(ctx), user.ID); err != nil {
		return nil, helper.ErrTransaction("Failed to revoke access", err)
	}
	user.Role = constants.RoleGuest
	user.EventCreationLimit = 0
	return &user, nil
}

type ListFilter struct {
	Role string
	Q    string
}

func ListUsers(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Paging) ([]model.UserModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.UserModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Q)); s != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []model.UserModel
	err := q.Order("id ASC").Limit(p.Limit).Offset(p.Offset).Find(&users).Error
	return users, total, err
}
