package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	authHelper "campusvibe_backend/internals/features/users/auth/helper"
	authRepo "campusvibe_backend/internals/features/users/auth/repository"
	userModel "campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
)

const invalidCredentials = "Invalid email or password"

func nowUTC() time.Time { return time.Now().UTC() }

// EnforceAccess applies the role lifecycle gate to a loaded user.
// Guests are rejected. Users past their expiry are demoted to Guest, the
// demotion is persisted, and the call fails with AccessExpired.
func EnforceAccess(db *gorm.DB, user *userModel.UserModel, now time.Time) error {
	if user.IsGuest() {
		return helper.ErrAccessRevoked()
	}
	if user.IsExpired(now) {
		if err := authRepo.DemoteToGuest(db, user.ID); err != nil {
			return helper.ErrTransaction("Failed to update access state", err)
		}
		log.Printf("[AUTH] user %d expired, demoted to Guest", user.ID)
		user.Role = constants.RoleGuest
		return helper.ErrAccessExpired()
	}
	return nil
}

// Authenticate resolves a bearer token to a validated user.
func Authenticate(ctx context.Context, db *gorm.DB, rawToken string) (*userModel.UserModel, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, helper.ErrAuthentication("Not authorized, no token")
	}
	userID, err := ParseAccessToken(rawToken)
	if err != nil {
		if errors.Is(err, ErrMissingSecret) {
			return nil, helper.ErrTransaction("Missing JWT secret", err)
		}
		return nil, helper.ErrAuthentication("Not authorized, token failed")
	}

	user, err := authRepo.FindUserByID(db.WithContext(ctx), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrAuthentication("Not authorized, user not found")
		}
		return nil, helper.ErrTransaction("Failed to load user", err)
	}
	if err := EnforceAccess(db.WithContext(ctx), user, nowUTC()); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *userModel.UserModel
}

// Login checks credentials. Unknown emails and bad passwords share one
// message so the response never reveals whether an account exists.
func Login(ctx context.Context, db *gorm.DB, email, password string) (*LoginResult, error) {
	user, err := authRepo.FindUserByEmail(db.WithContext(ctx), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrAuthentication(invalidCredentials)
		}
		return nil, helper.ErrTransaction("Failed to load user", err)
	}
	if err := authHelper.CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, helper.ErrAuthentication(invalidCredentials)
	}

	now := nowUTC()
	if err := EnforceAccess(db.WithContext(ctx), user, now); err != nil {
		return nil, err
	}

	token, exp, err := IssueAccessToken(user, now)
	if err != nil {
		return nil, helper.ErrTransaction("Failed to issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}
