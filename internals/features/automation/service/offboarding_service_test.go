package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	archiveModel "campusvibe_backend/internals/features/archives/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	userModel "campusvibe_backend/internals/features/users/user/model"
	"campusvibe_backend/internals/helpers/mailer"
)

type fixture struct {
	db  *gorm.DB
	off *Offboarder
	rec *mailer.Recorder
	d   *mailer.Dispatcher
	now time.Time
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	d, rec := dbtest.Mailer(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	off := &Offboarder{DB: db, Store: dbtest.Store(t), Mailer: d, Now: func() time.Time { return now }}
	return fixture{db: db, off: off, rec: rec, d: d, now: now}
}

func (f fixture) member(t *testing.T, eventID uint, m memberModel.Member, role, payment string, checkedIn bool) {
	t.Helper()
	row := memberModel.NewEventMember(eventID, m, role)
	row.PaymentStatus = payment
	row.CheckedIn = checkedIn
	require.NoError(t, f.db.Create(row).Error)
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func TestRunArchivesPurgesAndDemotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	expired := f.now.Add(-time.Hour)
	org := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 3, &expired)
	sub := dbtest.CreateUser(t, f.db, constants.RoleSubOrganizer, 0, nil)
	active := f.now.Add(30 * 24 * time.Hour)
	other := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 2, &active)

	course := dbtest.CreateCourse(t, f.db, "BSc Physics")
	s1 := dbtest.CreateStudent(t, f.db, "S1", course.ID, 1, "A")
	dbtest.CreateStudent(t, f.db, "S2", course.ID, 1, "A")
	s3 := dbtest.CreateStudent(t, f.db, "S3", course.ID, 1, "A")
	dbtest.CreateStudent(t, f.db, "S4", course.ID, 1, "A")
	dbtest.CreateEmployee(t, f.db, "E1")

	fest := dbtest.CreateEvent(t, f.db, org.ID, dbtest.Paid())
	f.member(t, fest.ID, memberModel.StudentMember{StudentID: "S1"}, constants.MemberRoleParticipant, constants.PaymentVerified, true)
	f.member(t, fest.ID, memberModel.StudentMember{StudentID: "S2"}, constants.MemberRoleParticipant, constants.PaymentPending, true)
	f.member(t, fest.ID, memberModel.StudentMember{StudentID: "S3"}, constants.MemberRoleCommittee, constants.PaymentNotApplicable, true)
	f.member(t, fest.ID, memberModel.StudentMember{StudentID: "S4"}, constants.MemberRoleParticipant, constants.PaymentVerified, false)
	f.member(t, fest.ID, memberModel.EmployeeMember{EmployeeID: "E1"}, constants.MemberRoleEmployeeOrganiser, constants.PaymentNotApplicable, true)

	// sub-event run by someone else goes with the fest
	subEvent := dbtest.CreateEvent(t, f.db, sub.ID, dbtest.WithParent(fest.ID))
	f.member(t, subEvent.ID, memberModel.StudentMember{StudentID: "S1"}, constants.MemberRoleStudentOrganiser, constants.PaymentNotApplicable, true)

	untouched := dbtest.CreateEvent(t, f.db, other.ID)

	sum, err := f.off.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Candidates)
	assert.Equal(t, 1, sum.Offboarded)
	assert.Equal(t, 2, sum.EventsArchived)

	var reloaded userModel.UserModel
	require.NoError(t, f.db.First(&reloaded, org.ID).Error)
	assert.Equal(t, constants.RoleGuest, reloaded.Role)
	assert.Zero(t, reloaded.EventCreationLimit)

	require.NoError(t, f.db.First(&reloaded, other.ID).Error)
	assert.Equal(t, constants.RoleOrganizer, reloaded.Role)

	assert.Zero(t, count(t, f.db, &eventModel.EventModel{}, "id IN ?", []uint{fest.ID, subEvent.ID}))
	assert.Zero(t, count(t, f.db, &memberModel.EventMemberModel{}, "event_id IN ?", []uint{fest.ID, subEvent.ID}))
	assert.EqualValues(t, 1, count(t, f.db, &eventModel.EventModel{}, "id = ?", untouched.ID))

	var festArchive archiveModel.EventArchiveModel
	require.NoError(t, f.db.
		Preload("Participated").Preload("Committee").Preload("Organized").Preload("EmployeeOrganized").
		Where("original_event_id = ?", fest.ID).First(&festArchive).Error)
	assert.Equal(t, fest.Name, festArchive.EventName)
	assert.Equal(t, org.Email, festArchive.OrganizerName)
	assert.Equal(t, 4, festArchive.ParticipantCount)
	require.Len(t, festArchive.Participated, 1)
	assert.Equal(t, "S1", festArchive.Participated[0].StudentID)
	require.Len(t, festArchive.Committee, 1)
	assert.Equal(t, "S3", festArchive.Committee[0].StudentID)
	assert.Empty(t, festArchive.Organized)
	require.Len(t, festArchive.EmployeeOrganized, 1)

	var subArchive archiveModel.EventArchiveModel
	require.NoError(t, f.db.Preload("Organized").Where("original_event_id = ?", subEvent.ID).First(&subArchive).Error)
	assert.Equal(t, sub.Email, subArchive.OrganizerName)
	require.Len(t, subArchive.Organized, 1)

	f.d.Wait()
	certs := f.rec.ByKind(mailer.KindCertificate)
	require.Len(t, certs, 3)
	subjects := map[string][]string{}
	for _, m := range certs {
		subjects[m.Recipients()[0]] = append(subjects[m.Recipients()[0]], m.Subject)
	}
	assert.Len(t, subjects[s1.Email], 2)
	require.Len(t, subjects[s3.Email], 1)
	assert.Contains(t, subjects[s3.Email][0], "Certificate of Appreciation")

	reports := f.rec.ByKind(mailer.KindFinalReport)
	require.Len(t, reports, 2)
	for _, m := range reports {
		require.Len(t, m.Attachments, 1)
		assert.Equal(t, mailer.XLSXContentType, m.Attachments[0].ContentType)
	}
}

func TestRunWithoutCandidates(t *testing.T) {
	f := setup(t)
	future := f.now.Add(time.Hour)
	dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &future)
	past := f.now.Add(-time.Hour)
	dbtest.CreateUser(t, f.db, constants.RoleGuest, 0, &past)
	dbtest.CreateUser(t, f.db, constants.RoleAdmin, 0, nil)

	sum, err := f.off.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Candidates)
	f.d.Wait()
	assert.Empty(t, f.rec.Messages())
}

// failUserUpdate makes any UPDATE of the given user abort inside its transaction.
func failUserUpdate(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	require.NoError(t, db.Exec(fmt.Sprintf(
		`CREATE TRIGGER fail_user_%d BEFORE UPDATE ON users WHEN OLD.id = %d BEGIN SELECT RAISE(ABORT, 'demote failed'); END`,
		userID, userID)).Error)
}

func TestRunFailureHandling(t *testing.T) {
	cases := []struct {
		name            string
		continueOnError bool
		wantOffboarded  int
		thirdRole       string
	}{
		{"aborts at first failure by default", false, 1, constants.RoleOrganizer},
		{"continues when configured", true, 2, constants.RoleGuest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t)
			f.off.ContinueOnError = tc.continueOnError
			expired := f.now.Add(-time.Hour)

			first := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &expired)
			second := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &expired)
			third := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &expired)
			dbtest.CreateEvent(t, f.db, second.ID)
			thirdEvent := dbtest.CreateEvent(t, f.db, third.ID)
			failUserUpdate(t, f.db, second.ID)

			sum, err := f.off.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("user %d", second.ID))
			assert.Equal(t, 3, sum.Candidates)
			assert.Equal(t, 1, sum.Failed)
			assert.Equal(t, tc.wantOffboarded, sum.Offboarded)

			roleOf := func(id uint) string {
				var u userModel.UserModel
				require.NoError(t, f.db.First(&u, id).Error)
				return u.Role
			}
			assert.Equal(t, constants.RoleGuest, roleOf(first.ID))
			assert.Equal(t, constants.RoleOrganizer, roleOf(second.ID))
			assert.Equal(t, tc.thirdRole, roleOf(third.ID))

			// the failed user's work rolled back with its transaction
			assert.EqualValues(t, 1, count(t, f.db, &eventModel.EventModel{}, "organizer_id = ?", second.ID))
			wantThirdEvents := int64(1)
			if tc.continueOnError {
				wantThirdEvents = 0
			}
			assert.Equal(t, wantThirdEvents, count(t, f.db, &eventModel.EventModel{}, "id = ?", thirdEvent.ID))
		})
	}
}

func TestRunRefusesOverlap(t *testing.T) {
	f := setup(t)
	f.off.mu.Lock()
	_, err := f.off.Run(context.Background())
	f.off.mu.Unlock()
	assert.ErrorIs(t, err, ErrRunInProgress)

	_, err = f.off.Run(context.Background())
	assert.NoError(t, err)
}

func TestRunCopiesAdmin(t *testing.T) {
	f := setup(t)
	f.off.AdminEmail = "admin@campus.test"
	expired := f.now.Add(-time.Minute)
	org := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &expired)
	dbtest.CreateEvent(t, f.db, org.ID)

	_, err := f.off.Run(context.Background())
	require.NoError(t, err)
	f.d.Wait()

	var to []string
	for _, m := range f.rec.ByKind(mailer.KindFinalReport) {
		to = append(to, m.Recipients()...)
	}
	assert.ElementsMatch(t, []string{org.Email, "admin@campus.test"}, to)
}

func TestWarnExpiring(t *testing.T) {
	f := setup(t)
	in3 := f.now.Add(3 * 24 * time.Hour)
	in10 := f.now.Add(10 * 24 * time.Hour)
	past := f.now.Add(-time.Hour)

	soon := dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &in3)
	dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &in10)
	dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, &past)
	dbtest.CreateUser(t, f.db, constants.RoleGuest, 0, &in3)
	dbtest.CreateUser(t, f.db, constants.RoleOrganizer, 1, nil)

	n, err := f.off.WarnExpiring(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f.d.Wait()
	msgs := f.rec.ByKind(mailer.KindAccessWarning)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{soon.Email}, msgs[0].Recipients())
	assert.Equal(t, "Action Required: Your Organizer Access is Expiring Soon", msgs[0].Subject)

	var u userModel.UserModel
	require.NoError(t, f.db.First(&u, soon.ID).Error)
	assert.Equal(t, constants.RoleOrganizer, u.Role)
}
