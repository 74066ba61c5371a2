package dto

import (
	"strings"
	"time"

	"campusvibe_backend/internals/features/requirements/model"
)

type CreateRequirementRequest struct {
	ResourceID          *uint                  `json:"resource_id" validate:"omitempty,min=1"`
	Department          string                 `json:"department" validate:"required,max=150"`
	CoordinatorName     string                 `json:"coordinator_name" validate:"required,max=150"`
	CoordinatorEmail    string                 `json:"coordinator_email" validate:"required,email"`
	CoordinatorPhone    string                 `json:"coordinator_phone" validate:"required,max=30"`
	Requirements        model.RequirementItems `json:"requirements"`
	EventDate           *time.Time             `json:"event_date"`
	AssignedHeads       map[string]string      `json:"assigned_heads"`
	Message             *string                `json:"message" validate:"omitempty,max=2000"`
	AuthorizedHeadEmail *string                `json:"authorized_head_email" validate:"omitempty,email"`
	ConsultEmail        *string                `json:"consult_email" validate:"omitempty,email"`
}

func lowerPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*p))
	if v == "" {
		return nil
	}
	return &v
}

func (r *CreateRequirementRequest) Normalize() {
	r.Department = strings.TrimSpace(r.Department)
	r.CoordinatorName = strings.TrimSpace(r.CoordinatorName)
	r.CoordinatorEmail = strings.ToLower(strings.TrimSpace(r.CoordinatorEmail))
	r.CoordinatorPhone = strings.TrimSpace(r.CoordinatorPhone)
	r.AuthorizedHeadEmail = lowerPtr(r.AuthorizedHeadEmail)
	r.ConsultEmail = lowerPtr(r.ConsultEmail)
	if r.Message != nil {
		m := strings.TrimSpace(*r.Message)
		if m == "" {
			r.Message = nil
		} else {
			r.Message = &m
		}
	}
}

type UpdateStatusRequest struct {
	ApprovalStatus string `json:"approval_status" validate:"required,oneof=Pending Approved Rejected"`
}

type ListQuery struct {
	Status  string
	EventID uint
}

// CreateResult reports the stored requirement and who was notified.
type CreateResult struct {
	Requirement *model.EventRequirementModel `json:"requirement"`
	NotifiedTo  []string                     `json:"notified_to"`
}

type CreateResourceRequest struct {
	ResourceName       string `json:"resource_name" validate:"required,max=150"`
	Category           string `json:"category" validate:"max=80"`
	InchargeEmployeeID string `json:"incharge_employee_id" validate:"required,max=50"`
}

func (r CreateResourceRequest) ToModel() *model.ResourceModel {
	return &model.ResourceModel{
		ResourceName:       strings.TrimSpace(r.ResourceName),
		Category:           strings.TrimSpace(r.Category),
		InchargeEmployeeID: strings.TrimSpace(r.InchargeEmployeeID),
	}
}

type UpdateResourceRequest struct {
	ResourceName       *string `json:"resource_name" validate:"omitempty,min=1,max=150"`
	Category           *string `json:"category" validate:"omitempty,max=80"`
	InchargeEmployeeID *string `json:"incharge_employee_id" validate:"omitempty,min=1,max=50"`
}

func (r UpdateResourceRequest) Changes() map[string]any {
	m := map[string]any{}
	if r.ResourceName != nil {
		m["resource_name"] = strings.TrimSpace(*r.ResourceName)
	}
	if r.Category != nil {
		m["category"] = strings.TrimSpace(*r.Category)
	}
	if r.InchargeEmployeeID != nil {
		m["incharge_employee_id"] = strings.TrimSpace(*r.InchargeEmployeeID)
	}
	return m
}
