package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/databases/dbtest"
	"campusvibe_backend/internals/features/academics/model"
)

func TestSeedFileIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, SeedAcademicsFromJSON(db, "data_academics.json"))
	require.NoError(t, SeedAcademicsFromJSON(db, "data_academics.json"))

	var students, employees, courses int64
	require.NoError(t, db.Model(&model.StudentModel{}).Count(&students).Error)
	require.NoError(t, db.Model(&model.EmployeeModel{}).Count(&employees).Error)
	require.NoError(t, db.Model(&model.CourseModel{}).Count(&courses).Error)
	assert.EqualValues(t, 4, students)
	assert.EqualValues(t, 3, employees)
	assert.EqualValues(t, 3, courses)

	var st model.StudentModel
	require.NoError(t, db.Preload("Course").First(&st, "student_id = ?", "ECE2201").Error)
	assert.Equal(t, "BTech ECE", st.Course.CourseName)
}

func TestSeedRejectsUnknownCourse(t *testing.T) {
	db := dbtest.Open(t)
	err := SeedAcademics(db, Data{Students: []studentSeed{{StudentID: "X1", Name: "X", Email: "x@y.test", Year: 1, Section: "A", Course: "Nope"}}})
	assert.Error(t, err)
}
