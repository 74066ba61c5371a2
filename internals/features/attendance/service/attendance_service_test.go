package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	academicModel "campusvibe_backend/internals/features/academics/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

func addMember(t *testing.T, db *gorm.DB, eventID uint, studentID, role string, checkedIn bool) {
	t.Helper()
	m := memberModel.NewEventMember(eventID, memberModel.StudentMember{StudentID: studentID}, role)
	m.CheckedIn = checkedIn
	m.PaymentStatus = constants.PaymentNotApplicable
	require.NoError(t, db.Create(m).Error)
}

func addTimetable(t *testing.T, db *gorm.DB, courseID uint, year int, section string, entries ...academicModel.TimeTableEntryModel) {
	t.Helper()
	tt := &academicModel.TimeTableModel{CourseID: courseID, Year: year, Section: section, Entries: entries}
	require.NoError(t, db.Create(tt).Error)
}

func TestSendGroupsClassesByInstructor(t *testing.T) {
	db := dbtest.Open(t)
	notifier, rec := dbtest.Mailer(t)
	svc := New(db, notifier)

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	ev := dbtest.CreateEvent(t, db, org.ID)

	cse := dbtest.CreateCourse(t, db, "BTech CSE")
	ece := dbtest.CreateCourse(t, db, "BTech ECE")
	ds := &academicModel.SubjectModel{Name: "Data Structures", CourseID: cse.ID, Year: 2}
	dsp := &academicModel.SubjectModel{Name: "Signals", CourseID: ece.ID, Year: 3}
	require.NoError(t, db.Create(ds).Error)
	require.NoError(t, db.Create(dsp).Error)

	profA := dbtest.CreateEmployee(t, db, "E1")
	profB := dbtest.CreateEmployee(t, db, "E2")
	dbtest.CreateEmployee(t, db, "E3")

	addTimetable(t, db, cse.ID, 2, "A",
		academicModel.TimeTableEntryModel{SubjectID: ds.ID, InstructorID: "E1", Day: "Monday", TimeSlot: "09:00-10:00"},
	)
	addTimetable(t, db, ece.ID, 3, "B",
		academicModel.TimeTableEntryModel{SubjectID: dsp.ID, InstructorID: "E1", Day: "Tuesday", TimeSlot: "10:00-11:00"},
		academicModel.TimeTableEntryModel{SubjectID: dsp.ID, InstructorID: "E2", Day: "Friday", TimeSlot: "11:00-12:00"},
	)
	// no checked-in student sits in this group
	addTimetable(t, db, cse.ID, 4, "C",
		academicModel.TimeTableEntryModel{SubjectID: ds.ID, InstructorID: "E3", Day: "Monday", TimeSlot: "09:00-10:00"},
	)

	s1 := dbtest.CreateStudent(t, db, "S1", cse.ID, 2, "A")
	s2 := dbtest.CreateStudent(t, db, "S2", ece.ID, 3, "B")
	dbtest.CreateStudent(t, db, "S3", cse.ID, 4, "C")
	lead := dbtest.CreateStudent(t, db, "S4", cse.ID, 4, "C")

	addMember(t, db, ev.ID, "S1", constants.MemberRoleParticipant, true)
	addMember(t, db, ev.ID, "S2", constants.MemberRoleParticipant, true)
	addMember(t, db, ev.ID, "S3", constants.MemberRoleParticipant, false)
	addMember(t, db, ev.ID, "S4", constants.MemberRoleStudentOrganiser, false)

	res, err := svc.Send(context.Background(), helper.Actor{ID: org.ID, Role: org.Role}, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attendees)
	assert.Equal(t, 2, res.InstructorsNotified)
	assert.Equal(t, []string{lead.Name + " (S4)"}, res.Committee)

	notifier.Wait()
	msgs := rec.ByKind(mailer.KindAttendanceReport)
	require.Len(t, msgs, 2)

	byTo := map[string]mailer.Message{}
	for _, m := range msgs {
		byTo[m.Recipients()[0]] = m
	}
	a := byTo[profA.Email]
	assert.Contains(t, a.Text, "BTech CSE 2 A (Data Structures)")
	assert.Contains(t, a.Text, "BTech ECE 3 B (Signals)")
	assert.Contains(t, a.Text, s1.Name)
	assert.Contains(t, a.Text, s2.Name)
	require.Len(t, a.Attachments, 1)
	assert.Equal(t, mailer.XLSXContentType, a.Attachments[0].ContentType)

	b := byTo[profB.Email]
	assert.Contains(t, b.Text, "BTech ECE 3 B (Signals)")
	assert.NotContains(t, b.Text, s1.Name)
}

func TestSendWithoutAttendees(t *testing.T) {
	db := dbtest.Open(t)
	notifier, rec := dbtest.Mailer(t)
	svc := New(db, notifier)

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	ev := dbtest.CreateEvent(t, db, org.ID)

	res, err := svc.Send(context.Background(), helper.Actor{ID: org.ID, Role: org.Role}, ev.ID)
	require.NoError(t, err)
	assert.Zero(t, res.InstructorsNotified)
	notifier.Wait()
	assert.Empty(t, rec.Messages())
}

func TestSendRequiresOwnership(t *testing.T) {
	db := dbtest.Open(t)
	notifier, _ := dbtest.Mailer(t)
	svc := New(db, notifier)

	owner := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	other := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	ev := dbtest.CreateEvent(t, db, owner.ID)

	_, err := svc.Send(context.Background(), helper.Actor{ID: other.ID, Role: other.Role}, ev.ID)
	assert.Equal(t, helper.CodeForbidden, helper.ErrorCode(err))

	_, err = svc.Send(context.Background(), helper.Actor{ID: other.ID, Role: other.Role}, 9999)
	assert.Equal(t, helper.CodeNotFound, helper.ErrorCode(err))
}
