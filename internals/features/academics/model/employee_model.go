package model

import "time"

type EmployeeModel struct {
	EmployeeID         string    `gorm:"column:employee_id;primaryKey;size:50" json:"employee_id"`
	Name               string    `gorm:"size:150;not null" json:"name"`
	Email              string    `gorm:"size:255;not null" json:"email"`
	DepartmentID       *uint     `gorm:"column:department_id;index" json:"department_id,omitempty"`
	IsResourceIncharge bool      `gorm:"column:is_resource_incharge;not null;default:false" json:"is_resource_incharge"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EmployeeModel) TableName() string { return "employees" }
