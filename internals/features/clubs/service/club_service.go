package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campusvibe_backend/internals/features/clubs/dto"
	"campusvibe_backend/internals/features/clubs/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	helper "campusvibe_backend/internals/helpers"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

func (s *Service) List(ctx context.Context) ([]model.ClubModel, error) {
	var clubs []model.ClubModel
	err := s.DB.WithContext(ctx).Order("club_name ASC").Find(&clubs).Error
	return clubs, err
}

// Detail returns the club with its events, latest first.
func (s *Service) Detail(ctx context.Context, id uint) (*dto.ClubDetail, error) {
	db := s.DB.WithContext(ctx)

	var club model.ClubModel
	if err := db.First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Club not found")
		}
		return nil, err
	}

	events := []eventModel.EventModel{}
	if err := db.Where("club_id = ?", id).Order("start_time DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return &dto.ClubDetail{Club: club, Events: events}, nil
}
