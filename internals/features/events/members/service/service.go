package service

import (
	"errors"

	"gorm.io/gorm"

	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
)

const screenshotFolder = "registrations/payments"

type Service struct {
	DB     *gorm.DB
	Store  storage.Store
	Mailer mailer.Notifier
}

func New(db *gorm.DB, store storage.Store, notifier mailer.Notifier) *Service {
	return &Service{DB: db, Store: store, Mailer: notifier}
}

// duplicateAsConflict maps a unique violation on event_members to a Conflict.
func duplicateAsConflict(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return helper.ErrConflict(msg)
	}
	return err
}
