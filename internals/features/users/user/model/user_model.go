package model

import (
	"time"

	"campusvibe_backend/internals/constants"
)

// UserModel is an account that can sign in. Accounts are provisioned by the
// event-request workflow and are never hard-deleted.
type UserModel struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"column:password_hash;not null" json:"-"`
	Role               string     `gorm:"size:20;not null;default:Guest;index" json:"role"`
	AccessExpiryDate   *time.Time `gorm:"column:access_expiry_date;index" json:"access_expiry_date,omitempty"`
	EventCreationLimit int        `gorm:"column:event_creation_limit;not null;default:0" json:"event_creation_limit"`
	MustChangePassword bool       `gorm:"column:must_change_password;not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsGuest() bool {
	return u.Role == "" || u.Role == constants.RoleGuest
}

// IsExpired reports whether the access window closed before now.
// A nil expiry means permanent access.
func (u *UserModel) IsExpired(now time.Time) bool {
	return u.AccessExpiryDate != nil && u.AccessExpiryDate.Before(now)
}
