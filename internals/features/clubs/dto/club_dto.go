package dto

import (
	"strings"

	"campusvibe_backend/internals/features/clubs/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
)

type CreateClubRequest struct {
	ClubName    string  `json:"club_name" validate:"required,max=150"`
	Description string  `json:"description" validate:"max=5000"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
}

func (r CreateClubRequest) ToModel() *model.ClubModel {
	return &model.ClubModel{
		ClubName:    strings.TrimSpace(r.ClubName),
		Description: strings.TrimSpace(r.Description),
		LogoURL:     r.LogoURL,
	}
}

type UpdateClubRequest struct {
	ClubName    *string `json:"club_name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
}

func (r UpdateClubRequest) Changes() map[string]any {
	m := map[string]any{}
	if r.ClubName != nil {
		m["club_name"] = strings.TrimSpace(*r.ClubName)
	}
	if r.Description != nil {
		m["description"] = strings.TrimSpace(*r.Description)
	}
	if r.LogoURL != nil {
		m["logo_url"] = *r.LogoURL
	}
	return m
}

type ClubDetail struct {
	Club   model.ClubModel         `json:"club"`
	Events []eventModel.EventModel `json:"events"`
}
