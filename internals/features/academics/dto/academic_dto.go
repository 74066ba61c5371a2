package dto

import (
	"strings"

	"campusvibe_backend/internals/features/academics/model"
)

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// setString records a trimmed string change when the field was sent.
func setString(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}

/* ===================== Department ===================== */

type CreateDepartmentRequest struct {
	Name           string  `json:"name" validate:"required,max=150"`
	HeadEmployeeID *string `json:"head_employee_id" validate:"omitempty,max=50"`
}

func (r CreateDepartmentRequest) ToModel() *model.DepartmentModel {
	return &model.DepartmentModel{Name: strings.TrimSpace(r.Name), HeadEmployeeID: trimPtr(r.HeadEmployeeID)}
}

type UpdateDepartmentRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=150"`
	HeadEmployeeID *string `json:"head_employee_id" validate:"omitempty,max=50"`
}

func (r UpdateDepartmentRequest) Changes() map[string]any {
	m := map[string]any{}
	setString(m, "name", r.Name)
	if r.HeadEmployeeID != nil {
		m["head_employee_id"] = trimPtr(r.HeadEmployeeID)
	}
	return m
}

/* ===================== Course ===================== */

type CreateCourseRequest struct {
	CourseName   string `json:"course_name" validate:"required,max=150"`
	DepartmentID *uint  `json:"department_id" validate:"omitempty,min=1"`
}

func (r CreateCourseRequest) ToModel() *model.CourseModel {
	return &model.CourseModel{CourseName: strings.TrimSpace(r.CourseName), DepartmentID: r.DepartmentID}
}

type UpdateCourseRequest struct {
	CourseName   *string `json:"course_name" validate:"omitempty,min=1,max=150"`
	DepartmentID *uint   `json:"department_id" validate:"omitempty,min=1"`
}

func (r UpdateCourseRequest) Changes() map[string]any {
	m := map[string]any{}
	setString(m, "course_name", r.CourseName)
	if r.DepartmentID != nil {
		m["department_id"] = *r.DepartmentID
	}
	return m
}

/* ===================== Student ===================== */

type CreateStudentRequest struct {
	StudentID   string `json:"student_id" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=150"`
	Email       string `json:"email" validate:"required,email"`
	ClassRollNo string `json:"class_roll_no" validate:"max=50"`
	Year        int    `json:"year" validate:"required,min=1,max=8"`
	Section     string `json:"section" validate:"required,max=20"`
	CourseID    uint   `json:"course_id" validate:"required,min=1"`
}

func (r CreateStudentRequest) ToModel() *model.StudentModel {
	return &model.StudentModel{
		StudentID:   strings.TrimSpace(r.StudentID),
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		ClassRollNo: strings.TrimSpace(r.ClassRollNo),
		Year:        r.Year,
		Section:     strings.TrimSpace(r.Section),
		CourseID:    r.CourseID,
	}
}

type UpdateStudentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email       *string `json:"email" validate:"omitempty,email"`
	ClassRollNo *string `json:"class_roll_no" validate:"omitempty,max=50"`
	Year        *int    `json:"year" validate:"omitempty,min=1,max=8"`
	Section     *string `json:"section" validate:"omitempty,min=1,max=20"`
	CourseID    *uint   `json:"course_id" validate:"omitempty,min=1"`
}

func (r UpdateStudentRequest) Changes() map[string]any {
	m := map[string]any{}
	setString(m, "name", r.Name)
	if r.Email != nil {
		m["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	setString(m, "class_roll_no", r.ClassRollNo)
	if r.Year != nil {
		m["year"] = *r.Year
	}
	setString(m, "section", r.Section)
	if r.CourseID != nil {
		m["course_id"] = *r.CourseID
	}
	return m
}

/* ===================== Employee ===================== */

type CreateEmployeeRequest struct {
	EmployeeID         string `json:"employee_id" validate:"required,max=50"`
	Name               string `json:"name" validate:"required,max=150"`
	Email              string `json:"email" validate:"required,email"`
	DepartmentID       *uint  `json:"department_id" validate:"omitempty,min=1"`
	IsResourceIncharge bool   `json:"is_resource_incharge"`
}

func (r CreateEmployeeRequest) ToModel() *model.EmployeeModel {
	return &model.EmployeeModel{
		EmployeeID:         strings.TrimSpace(r.EmployeeID),
		Name:               strings.TrimSpace(r.Name),
		Email:              strings.ToLower(strings.TrimSpace(r.Email)),
		DepartmentID:       r.DepartmentID,
		IsResourceIncharge: r.IsResourceIncharge,
	}
}

type UpdateEmployeeRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email              *string `json:"email" validate:"omitempty,email"`
	DepartmentID       *uint   `json:"department_id" validate:"omitempty,min=1"`
	IsResourceIncharge *bool   `json:"is_resource_incharge"`
}

func (r UpdateEmployeeRequest) Changes() map[string]any {
	m := map[string]any{}
	setString(m, "name", r.Name)
	if r.Email != nil {
		m["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.DepartmentID != nil {
		m["department_id"] = *r.DepartmentID
	}
	if r.IsResourceIncharge != nil {
		m["is_resource_incharge"] = *r.IsResourceIncharge
	}
	return m
}

/* ===================== Subject ===================== */

type CreateSubjectRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Code     string `json:"code" validate:"max=50"`
	CourseID uint   `json:"course_id" validate:"required,min=1"`
	Year     int    `json:"year" validate:"min=0,max=8"`
}

func (r CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{
		Name:     strings.TrimSpace(r.Name),
		Code:     strings.ToUpper(strings.TrimSpace(r.Code)),
		CourseID: r.CourseID,
		Year:     r.Year,
	}
}

type UpdateSubjectRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=150"`
	Code     *string `json:"code" validate:"omitempty,max=50"`
	CourseID *uint   `json:"course_id" validate:"omitempty,min=1"`
	Year     *int    `json:"year" validate:"omitempty,min=0,max=8"`
}

func (r UpdateSubjectRequest) Changes() map[string]any {
	m := map[string]any{}
	setString(m, "name", r.Name)
	if r.Code != nil {
		m["code"] = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.CourseID != nil {
		m["course_id"] = *r.CourseID
	}
	if r.Year != nil {
		m["year"] = *r.Year
	}
	return m
}

/* ===================== Timetable ===================== */

type CreateTimeTableRequest struct {
	CourseID uint   `json:"course_id" validate:"required,min=1"`
	Year     int    `json:"year" validate:"required,min=1,max=8"`
	Section  string `json:"section" validate:"required,max=20"`
}

func (r CreateTimeTableRequest) ToModel() *model.TimeTableModel {
	return &model.TimeTableModel{CourseID: r.CourseID, Year: r.Year, Section: strings.TrimSpace(r.Section)}
}

type UpdateTimeTableRequest struct {
	CourseID *uint   `json:"course_id" validate:"omitempty,min=1"`
	Year     *int    `json:"year" validate:"omitempty,min=1,max=8"`
	Section  *string `json:"section" validate:"omitempty,min=1,max=20"`
}

func (r UpdateTimeTableRequest) Changes() map[string]any {
	m := map[string]any{}
	if r.CourseID != nil {
		m["course_id"] = *r.CourseID
	}
	if r.Year != nil {
		m["year"] = *r.Year
	}
	setString(m, "section", r.Section)
	return m
}

/* ===================== Timetable entry ===================== */

type CreateTimeTableEntryRequest struct {
	TimeTableID uint   `json:"time_table_id" validate:"required,min=1"`
	SubjectID   uint   `json:"subject_id" validate:"required,min=1"`
	EmployeeID  string `json:"employee_id" validate:"required,max=50"`
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TimeSlot    string `json:"time_slot" validate:"required,max=50"`
	RoomNo      string `json:"room_no" validate:"max=30"`
}

func (r CreateTimeTableEntryRequest) ToModel() *model.TimeTableEntryModel {
	return &model.TimeTableEntryModel{
		TimeTableID:  r.TimeTableID,
		SubjectID:    r.SubjectID,
		InstructorID: strings.TrimSpace(r.EmployeeID),
		Day:          r.Day,
		TimeSlot:     strings.TrimSpace(r.TimeSlot),
		RoomNo:       strings.TrimSpace(r.RoomNo),
	}
}

type UpdateTimeTableEntryRequest struct {
	SubjectID  *uint   `json:"subject_id" validate:"omitempty,min=1"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,min=1,max=50"`
	Day        *string `json:"day" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TimeSlot   *string `json:"time_slot" validate:"omitempty,min=1,max=50"`
	RoomNo     *string `json:"room_no" validate:"omitempty,max=30"`
}

func (r UpdateTimeTableEntryRequest) Changes() map[string]any {
	m := map[string]any{}
	if r.SubjectID != nil {
		m["subject_id"] = *r.SubjectID
	}
	setString(m, "employee_id", r.EmployeeID)
	if r.Day != nil {
		m["day"] = *r.Day
	}
	setString(m, "time_slot", r.TimeSlot)
	setString(m, "room_no", r.RoomNo)
	return m
}
