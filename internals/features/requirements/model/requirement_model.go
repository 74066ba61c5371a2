package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	academicModel "campusvibe_backend/internals/features/academics/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
)

// ResourceModel is a bookable campus facility with a responsible employee.
type ResourceModel struct {
	ID                 uint                         `gorm:"primaryKey" json:"id"`
	ResourceName       string                       `gorm:"column:resource_name;size:150;uniqueIndex;not null" json:"resource_name"`
	Category           string                       `gorm:"size:80" json:"category"`
	InchargeEmployeeID string                       `gorm:"column:incharge_employee_id;size:50;not null;index" json:"incharge_employee_id"`
	Incharge           *academicModel.EmployeeModel `gorm:"foreignKey:InchargeEmployeeID;references:EmployeeID" json:"incharge,omitempty"`
	CreatedAt          time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ResourceModel) TableName() string { return "resources" }

// RequirementItems is the checklist stored in event_requirements.requirements.
type RequirementItems struct {
	Electricity bool   `json:"electricity"`
	SoundSystem bool   `json:"sound_system"`
	Projector   bool   `json:"projector"`
	Tables      bool   `json:"tables"`
	Chairs      bool   `json:"chairs"`
	Wifi        bool   `json:"wifi"`
	Others      string `json:"others"`
}

type EventRequirementModel struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	EventID             uint           `gorm:"column:event_id;not null;index" json:"event_id"`
	ResourceID          *uint          `gorm:"column:resource_id;index" json:"resource_id,omitempty"`
	Department          string         `gorm:"size:150;not null" json:"department"`
	CoordinatorName     string         `gorm:"column:coordinator_name;size:150;not null" json:"coordinator_name"`
	CoordinatorEmail    string         `gorm:"column:coordinator_email;size:255;not null" json:"coordinator_email"`
	CoordinatorPhone    string         `gorm:"column:coordinator_phone;size:30;not null" json:"coordinator_phone"`
	Requirements        datatypes.JSON `gorm:"column:requirements;not null" json:"requirements"`
	EventDate           time.Time      `gorm:"column:event_date;not null" json:"event_date"`
	ApprovalStatus      string         `gorm:"column:approval_status;size:20;not null;default:Pending" json:"approval_status"`
	AssignedHeads       datatypes.JSON `gorm:"column:assigned_heads" json:"assigned_heads,omitempty"`
	Message             *string        `gorm:"type:text" json:"message,omitempty"`
	AuthorizedHeadEmail *string        `gorm:"column:authorized_head_email;size:255" json:"authorized_head_email,omitempty"`
	ConsultEmail        *string        `gorm:"column:consult_email;size:255" json:"consult_email,omitempty"`

	Event    *eventModel.EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Resource *ResourceModel         `gorm:"foreignKey:ResourceID;constraint:OnDelete:SET NULL" json:"resource,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventRequirementModel) TableName() string { return "event_requirements" }

// Items lists the requested facilities in display form.
func (r RequirementItems) Items() []string {
	var out []string
	for _, it := range []struct {
		on    bool
		label string
	}{
		{r.Electricity, "Electricity"},
		{r.SoundSystem, "Sound system"},
		{r.Projector, "Projector"},
		{r.Tables, "Tables"},
		{r.Chairs, "Chairs"},
		{r.Wifi, "Wi-Fi"},
	} {
		if it.on {
			out = append(out, it.label)
		}
	}
	if others := strings.TrimSpace(r.Others); others != "" {
		out = append(out, "Other: "+others)
	}
	return out
}
