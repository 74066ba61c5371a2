package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campusvibe_backend/internals/features/events/events/model"
	helper "campusvibe_backend/internals/helpers"
)

func FindEvent(ctx context.Context, db *gorm.DB, eventID uint) (*model.EventModel, error) {
	var ev model.EventModel
	if err := db.WithContext(ctx).First(&ev, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Event not found")
		}
		return nil, err
	}
	return &ev, nil
}

// LoadManaged fetches an event the actor owns, or any event for an Admin.
func LoadManaged(ctx context.Context, db *gorm.DB, eventID uint, actor helper.Actor) (*model.EventModel, error) {
	ev, err := FindEvent(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.CanManage(actor.ID, actor.Role) {
		return nil, helper.ErrForbidden("You do not manage this event")
	}
	return ev, nil
}
