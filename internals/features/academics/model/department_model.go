package model

import "time"

type DepartmentModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	HeadEmployeeID *string   `gorm:"column:head_employee_id;size:50" json:"head_employee_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DepartmentModel) TableName() string { return "departments" }

type CourseModel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CourseName   string    `gorm:"column:course_name;size:150;not null" json:"course_name"`
	DepartmentID *uint     `gorm:"column:department_id;index" json:"department_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string { return "courses" }
