package model

import (
	"time"

	"gorm.io/datatypes"

	eventModel "campusvibe_backend/internals/features/events/events/model"
)

// EventRequestModel is an ask to organize events. Rows are kept after a
// decision as an audit trail.
type EventRequestModel struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	RequestorEmail      string         `gorm:"column:requestor_email;size:255;not null;index" json:"requestor_email"`
	EventDetails        datatypes.JSON `gorm:"column:event_details" json:"event_details,omitempty"`
	RequestedEventCount int            `gorm:"column:requested_event_count;not null;default:1" json:"requested_event_count"`
	Status              string         `gorm:"size:30;not null;index" json:"status"`
	RequestType         string         `gorm:"column:request_type;size:20;not null" json:"request_type"`
	Scope               string         `gorm:"size:20;not null" json:"scope"`
	ParentFestID        *uint          `gorm:"column:parent_fest_id;index" json:"parent_fest_id,omitempty"`

	ParentFest *eventModel.EventModel `gorm:"foreignKey:ParentFestID;constraint:OnDelete:SET NULL" json:"parent_fest,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventRequestModel) TableName() string { return "event_requests" }
