package dto

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/features/event_requests/model"
)

type SubmitEventRequest struct {
	RequestorEmail      string          `json:"requestor_email" validate:"required,email,max=255"`
	RequestType         string          `json:"request_type" validate:"required,oneof=Single Fest"`
	Scope               string          `json:"scope" validate:"omitempty,oneof=Individual 'Part of Fest'"`
	ParentFestID        *uint           `json:"parent_fest_id" validate:"omitempty,min=1"`
	EventDetails        json.RawMessage `json:"event_details"`
	RequestedEventCount int             `json:"requested_event_count" validate:"omitempty,min=1,max=50"`
}

// Normalize fills defaults: Fest requests are always Individual scope and the
// event count defaults to one.
func (r *SubmitEventRequest) Normalize() {
	r.RequestorEmail = strings.ToLower(strings.TrimSpace(r.RequestorEmail))
	if r.RequestType == constants.RequestTypeFest || r.Scope == "" {
		r.Scope = constants.ScopeIndividual
	}
	if r.Scope != constants.ScopePartOfFest {
		r.ParentFestID = nil
	}
	if r.RequestedEventCount <= 0 {
		r.RequestedEventCount = 1
	}
}

func (r *SubmitEventRequest) ToModel() *model.EventRequestModel {
	m := &model.EventRequestModel{
		RequestorEmail:      r.RequestorEmail,
		RequestedEventCount: r.RequestedEventCount,
		Status:              constants.RequestStatusPendingAdmin,
		RequestType:         r.RequestType,
		Scope:               r.Scope,
		ParentFestID:        r.ParentFestID,
	}
	if len(r.EventDetails) > 0 && string(r.EventDetails) != "null" {
		m.EventDetails = datatypes.JSON(r.EventDetails)
	}
	return m
}

// ApproveRequest carries the access granted on approval. A missing limit
// falls back to the number of events asked for.
type ApproveRequest struct {
	EventCreationLimit *int       `json:"event_creation_limit" validate:"omitempty,min=0,max=100"`
	AccessExpiryDate   *time.Time `json:"access_expiry_date"`
}

type DecisionResponse struct {
	Request     *model.EventRequestModel `json:"request"`
	AccountID   *uint                    `json:"account_id,omitempty"`
	AccountRole string                   `json:"account_role,omitempty"`
}
