package model

import "time"

type StudentModel struct {
	StudentID   string       `gorm:"column:student_id;primaryKey;size:50" json:"student_id"`
	Name        string       `gorm:"size:150;not null" json:"name"`
	Email       string       `gorm:"size:255;not null" json:"email"`
	ClassRollNo string       `gorm:"column:class_roll_no;size:50" json:"class_roll_no"`
	Year        int          `gorm:"not null" json:"year"`
	Section     string       `gorm:"size:20;not null" json:"section"`
	CourseID    uint         `gorm:"column:course_id;index;not null" json:"course_id"`
	Course      *CourseModel `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// GroupKey identifies the class a student sits in.
type GroupKey struct {
	CourseID uint
	Year     int
	Section  string
}

func (s StudentModel) Group() GroupKey {
	return GroupKey{CourseID: s.CourseID, Year: s.Year, Section: s.Section}
}
