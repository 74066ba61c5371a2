package model

import "time"

// EventArchiveModel is the permanent summary written when an event is purged.
type EventArchiveModel struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	OriginalEventID  uint       `gorm:"column:original_event_id;not null;index" json:"original_event_id"`
	EventName        string     `gorm:"column:event_name;size:200;not null" json:"event_name"`
	OrganizerName    string     `gorm:"column:organizer_name;size:255" json:"organizer_name"`
	Date             *time.Time `json:"date,omitempty"`
	Venue            string     `gorm:"size:200" json:"venue"`
	ParticipantCount int        `gorm:"column:participant_count;not null;default:0" json:"participant_count"`

	Participated      []ParticipatedEventModel      `gorm:"foreignKey:EventArchiveID;constraint:OnDelete:CASCADE" json:"participated,omitempty"`
	Committee         []CommitteeEventModel         `gorm:"foreignKey:EventArchiveID;constraint:OnDelete:CASCADE" json:"committee,omitempty"`
	Organized         []OrganizedEventModel         `gorm:"foreignKey:EventArchiveID;constraint:OnDelete:CASCADE" json:"organized,omitempty"`
	EmployeeOrganized []EmployeeOrganizedEventModel `gorm:"foreignKey:EventArchiveID;constraint:OnDelete:CASCADE" json:"employee_organized,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EventArchiveModel) TableName() string { return "event_archives" }

type ParticipatedEventModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      string    `gorm:"column:student_id;size:50;not null;index" json:"student_id"`
	EventArchiveID uint      `gorm:"column:event_archive_id;not null;index" json:"event_archive_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ParticipatedEventModel) TableName() string { return "participated_events" }

type CommitteeEventModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      string    `gorm:"column:student_id;size:50;not null;index" json:"student_id"`
	EventArchiveID uint      `gorm:"column:event_archive_id;not null;index" json:"event_archive_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CommitteeEventModel) TableName() string { return "committee_events" }

type OrganizedEventModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      string    `gorm:"column:student_id;size:50;not null;index" json:"student_id"`
	EventArchiveID uint      `gorm:"column:event_archive_id;not null;index" json:"event_archive_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OrganizedEventModel) TableName() string { return "organized_events" }

type EmployeeOrganizedEventModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmployeeID     string    `gorm:"column:employee_id;size:50;not null;index" json:"employee_id"`
	EventArchiveID uint      `gorm:"column:event_archive_id;not null;index" json:"event_archive_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmployeeOrganizedEventModel) TableName() string { return "employee_organized_events" }
