package repository

import (
	"strings"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	userModel "campusvibe_backend/internals/features/users/user/model"
)

func FindUserByID(db *gorm.DB, userID uint) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUserPassword(db *gorm.DB, userID uint, hash string) error {
	return db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash":        hash,
			"must_change_password": false,
		}).Error
}

// DemoteToGuest moves a user to the quarantine role. The creation limit is
// left as is; revocation paths that must zero it do so explicitly.
func DemoteToGuest(db *gorm.DB, userID uint) error {
	return db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("role", constants.RoleGuest).Error
}

// Revoke sets Guest and zeroes the creation limit.
func Revoke(db *gorm.DB, userID uint) (int64, error) {
	res := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"role":                 constants.RoleGuest,
			"event_creation_limit": 0,
		})
	return res.RowsAffected, res.Error
}
