package dto

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/features/events/events/model"
	helper "campusvibe_backend/internals/helpers"
)

// CreateEventRequest is read from a multipart form. JSON columns arrive as
// encoded strings; times are RFC3339.
type CreateEventRequest struct {
	Name               string `form:"name" json:"name" validate:"required,max=200"`
	Description        string `form:"description" json:"description"`
	StartTime          string `form:"start_time" json:"start_time" validate:"required"`
	EndTime            string `form:"end_time" json:"end_time"`
	Venue              string `form:"venue" json:"venue" validate:"required,max=200"`
	Mode               string `form:"mode" json:"mode" validate:"omitempty,oneof=Offline Online"`
	ClubID             *uint  `form:"club_id" json:"club_id"`
	ParentID           *uint  `form:"parent_id" json:"parent_id"`
	Contacts           string `form:"contacts" json:"contacts"`
	RegistrationSchema string `form:"registration_schema" json:"registration_schema"`
	RegistrationType   string `form:"registration_type" json:"registration_type" validate:"omitempty,oneof=Individual Team"`
	IsPaidEvent        bool   `form:"is_paid_event" json:"is_paid_event"`
	RegistrationFee    int64  `form:"registration_fee" json:"registration_fee" validate:"min=0"`
	HasLeaderboard     bool   `form:"has_leaderboard" json:"has_leaderboard"`
}

func parseTime(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, helper.ErrValidation(field + " must be an RFC3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

func parseJSON(field, v string) (datatypes.JSON, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if !json.Valid([]byte(v)) {
		return nil, helper.ErrValidation(field + " must be valid JSON")
	}
	return datatypes.JSON(v), nil
}

func (r *CreateEventRequest) ToModel(organizerID uint) (*model.EventModel, error) {
	start, err := parseTime("start_time", r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("end_time", r.EndTime)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(*start) {
		return nil, helper.ErrValidation("end_time must not be before start_time")
	}
	contacts, err := parseJSON("contacts", r.Contacts)
	if err != nil {
		return nil, err
	}
	schema, err := parseJSON("registration_schema", r.RegistrationSchema)
	if err != nil {
		return nil, err
	}
	if r.IsPaidEvent && r.RegistrationFee <= 0 {
		return nil, helper.ErrValidation("registration_fee is required for paid events")
	}

	mode := model.EventModeOffline
	if r.Mode != "" {
		mode = model.EventMode(r.Mode)
	}
	regType := constants.RegistrationIndividual
	if r.RegistrationType != "" {
		regType = r.RegistrationType
	}
	fee := r.RegistrationFee
	if !r.IsPaidEvent {
		fee = 0
	}

	return &model.EventModel{
		Name:               strings.TrimSpace(r.Name),
		Description:        strings.TrimSpace(r.Description),
		StartTime:          *start,
		EndTime:            end,
		Venue:              strings.TrimSpace(r.Venue),
		Mode:               mode,
		ParentID:           r.ParentID,
		ClubID:             r.ClubID,
		OrganizerID:        organizerID,
		Contacts:           contacts,
		RegistrationSchema: schema,
		RegistrationType:   regType,
		IsPaidEvent:        r.IsPaidEvent,
		RegistrationFee:    fee,
		HasLeaderboard:     r.HasLeaderboard,
	}, nil
}

// UpdateEventRequest is a partial update; nil fields are left alone.
type UpdateEventRequest struct {
	Name                 *string `form:"name" json:"name" validate:"omitempty,min=1,max=200"`
	Description          *string `form:"description" json:"description"`
	StartTime            *string `form:"start_time" json:"start_time"`
	EndTime              *string `form:"end_time" json:"end_time"`
	Venue                *string `form:"venue" json:"venue" validate:"omitempty,min=1,max=200"`
	Mode                 *string `form:"mode" json:"mode" validate:"omitempty,oneof=Offline Online"`
	ClubID               *uint   `form:"club_id" json:"club_id"`
	Contacts             *string `form:"contacts" json:"contacts"`
	RegistrationSchema   *string `form:"registration_schema" json:"registration_schema"`
	IsPaidEvent          *bool   `form:"is_paid_event" json:"is_paid_event"`
	RegistrationFee      *int64  `form:"registration_fee" json:"registration_fee" validate:"omitempty,min=0"`
	HasLeaderboard       *bool   `form:"has_leaderboard" json:"has_leaderboard"`
	ShowLeaderboardMarks *bool   `form:"show_leaderboard_marks" json:"show_leaderboard_marks"`
	RegistrationLocked   *bool   `form:"registration_locked" json:"registration_locked"`
}

// Changes validates the patch against the current row and returns the
// column updates to apply.
func (r *UpdateEventRequest) Changes(cur *model.EventModel) (map[string]any, error) {
	out := map[string]any{}

	if r.Name != nil {
		out["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		out["description"] = strings.TrimSpace(*r.Description)
	}
	if r.Venue != nil {
		out["venue"] = strings.TrimSpace(*r.Venue)
	}
	if r.Mode != nil {
		out["mode"] = *r.Mode
	}
	if r.ClubID != nil {
		if *r.ClubID == 0 {
			out["club_id"] = nil
		} else {
			out["club_id"] = *r.ClubID
		}
	}

	start, end := cur.StartTime, cur.EndTime
	if r.StartTime != nil {
		t, err := parseTime("start_time", *r.StartTime)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, helper.ErrValidation("start_time cannot be cleared")
		}
		start = *t
		out["start_time"] = start
	}
	if r.EndTime != nil {
		t, err := parseTime("end_time", *r.EndTime)
		if err != nil {
			return nil, err
		}
		end = t
		out["end_time"] = t
	}
	if end != nil && end.Before(start) {
		return nil, helper.ErrValidation("end_time must not be before start_time")
	}

	if r.Contacts != nil {
		j, err := parseJSON("contacts", *r.Contacts)
		if err != nil {
			return nil, err
		}
		out["contacts"] = j
	}
	if r.RegistrationSchema != nil {
		j, err := parseJSON("registration_schema", *r.RegistrationSchema)
		if err != nil {
			return nil, err
		}
		out["registration_schema"] = j
	}

	paid, fee := cur.IsPaidEvent, cur.RegistrationFee
	if r.IsPaidEvent != nil {
		paid = *r.IsPaidEvent
		out["is_paid_event"] = paid
	}
	if r.RegistrationFee != nil {
		fee = *r.RegistrationFee
		out["registration_fee"] = fee
	}
	if paid && fee <= 0 {
		return nil, helper.ErrValidation("registration_fee is required for paid events")
	}
	if !paid && fee != 0 {
		out["registration_fee"] = int64(0)
	}

	if r.HasLeaderboard != nil {
		out["has_leaderboard"] = *r.HasLeaderboard
	}
	if r.ShowLeaderboardMarks != nil {
		out["show_leaderboard_marks"] = *r.ShowLeaderboardMarks
	}
	if r.RegistrationLocked != nil {
		out["registration_locked"] = *r.RegistrationLocked
	}
	return out, nil
}

// ListQuery filters the public catalogue.
type ListQuery struct {
	ClubID   *uint  `query:"club_id"`
	ParentID *uint  `query:"parent_id"`
	TopLevel bool   `query:"top_level"`
	Upcoming bool   `query:"upcoming"`
	Q        string `query:"q"`
}

// LeaderboardRow is the public view of one competitor. Marks are omitted
// unless the organizer made them visible.
type LeaderboardRow struct {
	CompetitorID   string `json:"competitor_id"`
	CompetitorType string `json:"competitor_type"`
	Name           string `json:"name"`
	Rank           *int   `json:"rank,omitempty"`
	Marks          *int   `json:"marks,omitempty"`
}

type LeaderboardResponse struct {
	EventID   uint             `json:"event_id"`
	ShowMarks bool             `json:"show_marks"`
	Entries   []LeaderboardRow `json:"entries"`
}
