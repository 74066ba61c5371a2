package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	authHelper "campusvibe_backend/internals/features/users/auth/helper"
	"campusvibe_backend/internals/features/users/user/model"
)

func TestSeedAdminCreatesThenPromotes(t *testing.T) {
	db := dbtest.Open(t)

	u, err := SeedAdmin(db, " Admin@Campus.test ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin@campus.test", u.Email)
	assert.Equal(t, constants.RoleAdmin, u.Role)
	assert.NoError(t, authHelper.CheckPasswordHash(u.PasswordHash, "s3cret-pass"))

	past := time.Now().UTC().Add(-time.Hour)
	guest := dbtest.CreateUser(t, db, constants.RoleGuest, 0, &past)
	again, err := SeedAdmin(db, guest.Email, "another-pass")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, again.ID)

	var stored model.UserModel
	require.NoError(t, db.First(&stored, guest.ID).Error)
	assert.Equal(t, constants.RoleAdmin, stored.Role)
	assert.Nil(t, stored.AccessExpiryDate)
	assert.NoError(t, authHelper.CheckPasswordHash(stored.PasswordHash, "another-pass"))
}

func TestSeedAdminRejectsWeakInput(t *testing.T) {
	db := dbtest.Open(t)
	_, err := SeedAdmin(db, "", "long-enough")
	assert.Error(t, err)
	_, err = SeedAdmin(db, "a@b.test", "short")
	assert.Error(t, err)
}
