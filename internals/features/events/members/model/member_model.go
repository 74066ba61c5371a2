package model

import (
	"time"

	"gorm.io/datatypes"

	"campusvibe_backend/internals/constants"
	eventModel "campusvibe_backend/internals/features/events/events/model"
)

// TeamModel groups participants of a Team-type event. Payment is tracked once
// per team; removing the team removes its members.
type TeamModel struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	EventID               uint           `gorm:"column:event_id;not null;index" json:"event_id"`
	TeamName              string         `gorm:"column:team_name;size:150;not null" json:"team_name"`
	TeamLeaderStudentID   string         `gorm:"column:team_leader_student_id;size:50;not null" json:"team_leader_student_id"`
	TransactionID         *string        `gorm:"column:transaction_id;size:120" json:"transaction_id,omitempty"`
	PaymentScreenshotPath *string        `gorm:"column:payment_screenshot_path" json:"payment_screenshot_path,omitempty"`
	PaymentStatus         string         `gorm:"column:payment_status;size:20;not null" json:"payment_status"`
	CustomFormData        datatypes.JSON `gorm:"column:custom_form_data" json:"custom_form_data,omitempty"`

	Event   *eventModel.EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Members []EventMemberModel     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TeamModel) TableName() string { return "teams" }

// EventMemberModel is one person attached to an event, at most once per
// event. The (member_type, member_id) column pair is written only through
// SetMember.
type EventMemberModel struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	EventID               uint           `gorm:"column:event_id;not null;uniqueIndex:uq_event_member" json:"event_id"`
	MemberIDValue         string         `gorm:"column:member_id;size:50;not null;uniqueIndex:uq_event_member;index" json:"member_id"`
	MemberTypeValue       MemberType     `gorm:"column:member_type;size:20;not null;uniqueIndex:uq_event_member" json:"member_type"`
	Role                  string         `gorm:"size:40;not null" json:"role"`
	CheckedIn             bool           `gorm:"column:checked_in;not null;default:false" json:"checked_in"`
	TeamID                *uint          `gorm:"column:team_id;index" json:"team_id,omitempty"`
	TransactionID         *string        `gorm:"column:transaction_id;size:120" json:"transaction_id,omitempty"`
	PaymentScreenshotPath *string        `gorm:"column:payment_screenshot_path" json:"payment_screenshot_path,omitempty"`
	PaymentStatus         string         `gorm:"column:payment_status;size:20" json:"payment_status,omitempty"`
	CustomFormData        datatypes.JSON `gorm:"column:custom_form_data" json:"custom_form_data,omitempty"`

	Event *eventModel.EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventMemberModel) TableName() string { return "event_members" }

func NewEventMember(eventID uint, m Member, role string) *EventMemberModel {
	em := &EventMemberModel{EventID: eventID, Role: role}
	em.SetMember(m)
	return em
}

func (em *EventMemberModel) SetMember(m Member) {
	em.MemberIDValue = m.MemberID()
	em.MemberTypeValue = m.MemberType()
}

// Member returns the typed identity; rows written through SetMember never fail.
func (em *EventMemberModel) Member() (Member, error) {
	return ParseMember(string(em.MemberTypeValue), em.MemberIDValue)
}

func (em *EventMemberModel) IsStudent() bool {
	return em.MemberTypeValue == MemberTypeStudent
}

// PaymentSettled reports whether the member may be credited for the event:
// free events and staff roles always qualify, team members follow their
// team's status, and individual registrants need their own verified payment.
func (em *EventMemberModel) PaymentSettled(event *eventModel.EventModel, team *TeamModel) bool {
	if !event.IsPaidEvent || em.Role != constants.MemberRoleParticipant {
		return true
	}
	if em.TeamID != nil {
		return team != nil && team.PaymentStatus == constants.PaymentVerified
	}
	return em.PaymentStatus == constants.PaymentVerified
}
