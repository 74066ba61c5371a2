package dto

import (
	"time"

	"gorm.io/datatypes"

	memberModel "campusvibe_backend/internals/features/events/members/model"
)

// MemberView is one roster line with the member's name resolved and the
// effective payment status (team members follow their team).
type MemberView struct {
	ID             uint           `json:"id"`
	MemberID       string         `json:"member_id"`
	MemberType     string         `json:"member_type"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	CheckedIn      bool           `json:"checked_in"`
	TeamID         *uint          `json:"team_id,omitempty"`
	TeamName       string         `json:"team_name,omitempty"`
	PaymentStatus  string         `json:"payment_status,omitempty"`
	TransactionID  *string        `json:"transaction_id,omitempty"`
	CustomFormData datatypes.JSON `json:"custom_form_data,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AddStaffRequest struct {
	MemberID   string `json:"member_id" validate:"required,max=50"`
	MemberType string `json:"member_type" validate:"required,oneof=Student Employee"`
	Role       string `json:"role" validate:"required"`
}

type CheckInRequest struct {
	CheckedIn *bool `json:"checked_in" validate:"required"`
}

// PaymentTarget names either a team or an individual registration.
type PaymentTarget struct {
	Type string `json:"type" validate:"required,oneof=Team Individual"`
	ID   uint   `json:"id" validate:"required,min=1"`
}

type RejectPaymentRequest struct {
	PaymentTarget
	Reason string `json:"reason" validate:"max=500"`
}

type PendingVerifications struct {
	Teams       []memberModel.TeamModel        `json:"teams"`
	Individuals []memberModel.EventMemberModel `json:"individuals"`
}

// ExportColumns returns the custom form keys present across the roster.
func ExportColumns(keys map[string]struct{}) []string { return sortedKeys(keys) }
