package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/databases/dbtest"
	academicModel "campusvibe_backend/internals/features/academics/model"
)

func TestTimetableEntryReferencesEmployee(t *testing.T) {
	db := dbtest.Open(t)

	course := dbtest.CreateCourse(t, db, "BTech CSE")
	subject := &academicModel.SubjectModel{Name: "Operating Systems", CourseID: course.ID, Year: 3}
	require.NoError(t, db.Create(subject).Error)

	// employees must be insertable without any timetable row
	prof := dbtest.CreateEmployee(t, db, "EMP100")

	tt := &academicModel.TimeTableModel{CourseID: course.ID, Year: 3, Section: "A"}
	require.NoError(t, db.Create(tt).Error)

	entry := &academicModel.TimeTableEntryModel{
		TimeTableID:  tt.ID,
		SubjectID:    subject.ID,
		InstructorID: prof.EmployeeID,
		Day:          "Monday",
		TimeSlot:     "09:00-10:00",
	}
	require.NoError(t, db.Create(entry).Error)

	orphan := &academicModel.TimeTableEntryModel{
		TimeTableID:  tt.ID,
		SubjectID:    subject.ID,
		InstructorID: "NOBODY",
		Day:          "Tuesday",
		TimeSlot:     "09:00-10:00",
	}
	assert.Error(t, db.Create(orphan).Error, "entry must point at an existing employee")

	var loaded academicModel.TimeTableModel
	require.NoError(t, db.Preload("Entries.Employee").First(&loaded, tt.ID).Error)
	require.Len(t, loaded.Entries, 1)
	require.NotNil(t, loaded.Entries[0].Employee)
	assert.Equal(t, prof.Email, loaded.Entries[0].Employee.Email)

	// a second employee with no schedule is still fine
	dbtest.CreateEmployee(t, db, "EMP101")
	var n int64
	require.NoError(t, db.Model(&academicModel.EmployeeModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}
