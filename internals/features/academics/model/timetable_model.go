package model

import "time"

type SubjectModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Code      string    `gorm:"size:50" json:"code"`
	CourseID  uint      `gorm:"column:course_id;index;not null" json:"course_id"`
	Year      int       `json:"year"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

// TimeTableModel is the weekly schedule of one (course, year, section) group.
type TimeTableModel struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	CourseID  uint                  `gorm:"column:course_id;not null;uniqueIndex:uq_time_table_group" json:"course_id"`
	Year      int                   `gorm:"not null;uniqueIndex:uq_time_table_group" json:"year"`
	Section   string                `gorm:"size:20;not null;uniqueIndex:uq_time_table_group" json:"section"`
	Course    *CourseModel          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Entries   []TimeTableEntryModel `gorm:"foreignKey:TimeTableID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
	CreatedAt time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeTableModel) TableName() string { return "time_tables" }

// TimeTableEntryModel belongs to one instructor. InstructorID maps the
// employee_id column; a field named EmployeeID here would make GORM resolve
// Employee as has-one with the constraint on employees.
type TimeTableEntryModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TimeTableID  uint           `gorm:"column:time_table_id;index;not null" json:"time_table_id"`
	SubjectID    uint           `gorm:"column:subject_id;index;not null" json:"subject_id"`
	InstructorID string         `gorm:"column:employee_id;size:50;index;not null" json:"employee_id"`
	Day          string         `gorm:"size:20;not null" json:"day"`
	TimeSlot     string         `gorm:"column:time_slot;size:50;not null" json:"time_slot"`
	RoomNo       string         `gorm:"column:room_no;size:30" json:"room_no"`
	Subject      *SubjectModel  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Employee     *EmployeeModel `gorm:"foreignKey:InstructorID;references:EmployeeID" json:"employee,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeTableEntryModel) TableName() string { return "time_table_entries" }
