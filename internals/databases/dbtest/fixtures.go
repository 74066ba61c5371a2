package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	userModel "campusvibe_backend/internals/features/users/user/model"
)

// CreateUser inserts an account with the given role and an optional expiry.
func CreateUser(t testing.TB, db *gorm.DB, role string, limit int, expiry *time.Time) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Email:              strings.ToLower(gofakeit.Email()),
		PasswordHash:       "not-a-real-hash",
		Role:               role,
		AccessExpiryDate:   expiry,
		EventCreationLimit: limit,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCourse(t testing.TB, db *gorm.DB, name string) *academicModel.CourseModel {
	t.Helper()
	c := &academicModel.CourseModel{CourseName: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateStudent inserts a student in the given class group.
func CreateStudent(t testing.TB, db *gorm.DB, id string, courseID uint, year int, section string) *academicModel.StudentModel {
	t.Helper()
	s := &academicModel.StudentModel{
		StudentID:   id,
		Name:        gofakeit.Name(),
		Email:       fmt.Sprintf("%s@students.campus.test", id),
		ClassRollNo: gofakeit.Numerify("##"),
		Year:        year,
		Section:     section,
		CourseID:    courseID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateEmployee(t testing.TB, db *gorm.DB, id string) *academicModel.EmployeeModel {
	t.Helper()
	e := &academicModel.EmployeeModel{
		EmployeeID: id,
		Name:       gofakeit.Name(),
		Email:      fmt.Sprintf("%s@staff.campus.test", id),
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// EventOption tweaks an event before insert.
type EventOption func(*eventModel.EventModel)

func Paid() EventOption { return func(e *eventModel.EventModel) { e.IsPaidEvent = true; e.RegistrationFee = 200 } }

func TeamEvent() EventOption {
	return func(e *eventModel.EventModel) { e.RegistrationType = constants.RegistrationTeam }
}

func Locked() EventOption { return func(e *eventModel.EventModel) { e.RegistrationLocked = true } }

func WithParent(id uint) EventOption { return func(e *eventModel.EventModel) { e.ParentID = &id } }

func CreateEvent(t testing.TB, db *gorm.DB, organizerID uint, opts ...EventOption) *eventModel.EventModel {
	t.Helper()
	e := &eventModel.EventModel{
		Name:             gofakeit.Sentence(3),
		Description:      gofakeit.Paragraph(1, 2, 8, " "),
		StartTime:        time.Now().UTC().Add(72 * time.Hour),
		Venue:            "Main Auditorium",
		Mode:             eventModel.EventModeOffline,
		OrganizerID:      organizerID,
		RegistrationType: constants.RegistrationIndividual,
	}
	for _, opt := range opts {
		opt(e)
	}
	require.NoError(t, db.Create(e).Error)
	return e
}
