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
	eventModel "campusvibe_backend/internals/features/events/events/model"
	"campusvibe_backend/internals/features/events/members/dto"
	"campusvibe_backend/internals/features/events/members/model"
	userModel "campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

type fixture struct {
	svc       *Service
	d         *mailer.Dispatcher
	rec       *mailer.Recorder
	organizer *userModel.UserModel
	students  []*academicModel.StudentModel
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	d, rec := dbtest.Mailer(t)
	f := fixture{
		svc:       New(db, dbtest.Store(t), d),
		d:         d,
		rec:       rec,
		organizer: dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil),
	}
	course := dbtest.CreateCourse(t, db, "B.Sc Physics")
	for _, id := range []string{"S1", "S2", "S3", "S4"} {
		f.students = append(f.students, dbtest.CreateStudent(t, db, id, course.ID, 3, "B"))
	}
	return f
}

func (f fixture) db() *gorm.DB { return f.svc.DB }

func (f fixture) actor() helper.Actor {
	return helper.Actor{ID: f.organizer.ID, Role: f.organizer.Role}
}

func (f fixture) event(t *testing.T, opts ...dbtest.EventOption) *eventModel.EventModel {
	return dbtest.CreateEvent(t, f.db(), f.organizer.ID, opts...)
}

func TestRegisterIndividualFree(t *testing.T) {
	f := setup(t)
	ev := f.event(t)

	in := dto.FromFormValues(map[string][]string{
		"student_id":     {"S1"},
		"transaction_id": {"TX-IGNORED"},
		"tshirt_size":    {"M"},
	})
	res, err := f.svc.Register(context.Background(), ev.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentNotApplicable, res.PaymentStatus)
	require.NotNil(t, res.Member)
	assert.Nil(t, res.Member.TransactionID)
	assert.Equal(t, constants.MemberRoleParticipant, res.Member.Role)
	assert.JSONEq(t, `{"tshirt_size":"M"}`, string(res.Member.CustomFormData))

	f.d.Wait()
	msgs := f.rec.ByKind(mailer.KindRegistration)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{f.students[0].Email}, msgs[0].Recipients())
	assert.Contains(t, msgs[0].Subject, "Registration Successful")
}

func TestRegisterIndividualPaidThenVerify(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.Paid())

	in := dto.RegistrationInput{StudentID: "S2", TransactionID: "UPI-991"}
	res, err := f.svc.Register(ctx, ev.ID, in, dbtest.ImageUpload(t, dto.FieldPaymentScreenshot, "proof.png"))
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentPending, res.PaymentStatus)
	require.NotNil(t, res.Member.TransactionID)
	assert.Equal(t, "UPI-991", *res.Member.TransactionID)
	require.NotNil(t, res.Member.PaymentScreenshotPath)

	pending, err := f.svc.PendingVerifications(ctx, f.actor(), ev.ID)
	require.NoError(t, err)
	require.Len(t, pending.Individuals, 1)

	target := dto.PaymentTarget{Type: PaymentTargetIndividual, ID: res.Member.ID}
	require.NoError(t, f.svc.VerifyPayment(ctx, f.actor(), target))

	var stored model.EventMemberModel
	require.NoError(t, f.db().First(&stored, res.Member.ID).Error)
	assert.Equal(t, constants.PaymentVerified, stored.PaymentStatus)

	err = f.svc.VerifyPayment(ctx, f.actor(), target)
	assert.Equal(t, helper.CodeInvalidState, helper.ErrorCode(err))

	f.d.Wait()
	msgs := f.rec.ByKind(mailer.KindRegistration)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Subject, "Pending Verification")
}

func TestRegisterTeam(t *testing.T) {
	f := setup(t)
	ev := f.event(t, dbtest.TeamEvent(), dbtest.Paid())

	in := dto.FromJSON(map[string]any{
		"team_name":               "Quarks",
		"team_leader_student_id":  "S1",
		"team_member_student_ids": []any{"S2", "S3", "S1", "S2"},
		"transaction_id":          "TX-7",
		"college":                 "North Campus",
	})
	res, err := f.svc.Register(context.Background(), ev.ID, in, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Team)
	assert.Equal(t, constants.PaymentPending, res.Team.PaymentStatus)
	assert.JSONEq(t, `{"college":"North Campus"}`, string(res.Team.CustomFormData))

	var rows []model.EventMemberModel
	require.NoError(t, f.db().Where("event_id = ?", ev.ID).Order("member_id").Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, res.Team.ID, *r.TeamID)
		assert.Empty(t, r.PaymentStatus)
		assert.Nil(t, r.TransactionID)
	}

	f.d.Wait()
	msgs := f.rec.ByKind(mailer.KindRegistration)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{f.students[0].Email}, msgs[0].Recipients())
}

func TestRegisterRejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	open := f.event(t)
	locked := f.event(t, dbtest.Locked())
	team := f.event(t, dbtest.TeamEvent())

	_, err := f.svc.Register(ctx, open.ID, dto.RegistrationInput{StudentID: "S4"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		eventID uint
		in      dto.RegistrationInput
		code    string
	}{
		{"locked event", locked.ID, dto.RegistrationInput{StudentID: "S1"}, helper.CodeForbidden},
		{"missing event", 4040, dto.RegistrationInput{StudentID: "S1"}, helper.CodeForbidden},
		{"unknown student", open.ID, dto.RegistrationInput{StudentID: "NOPE"}, helper.CodeValidation},
		{"missing student id", open.ID, dto.RegistrationInput{}, helper.CodeValidation},
		{"duplicate", open.ID, dto.RegistrationInput{StudentID: "S4"}, helper.CodeConflict},
		{"unknown leader", team.ID, dto.RegistrationInput{TeamName: "X", TeamLeaderStudentID: "NOPE"}, helper.CodeValidation},
		{"unknown teammate", team.ID, dto.RegistrationInput{TeamName: "X", TeamLeaderStudentID: "S1", TeamMemberStudentIDs: []string{"GHOST"}}, helper.CodeValidation},
		{"team without name", team.ID, dto.RegistrationInput{TeamLeaderStudentID: "S1"}, helper.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tt.eventID, tt.in, nil)
			require.Error(t, err)
			assert.Equal(t, tt.code, helper.ErrorCode(err))
		})
	}

	var teams int64
	require.NoError(t, f.db().Model(&model.TeamModel{}).Count(&teams).Error)
	assert.Zero(t, teams)
}

func TestRegisterTeamConflictLeavesNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.TeamEvent())

	_, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{TeamName: "A", TeamLeaderStudentID: "S1", TeamMemberStudentIDs: []string{"S2"}}, nil)
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, ev.ID, dto.RegistrationInput{TeamName: "B", TeamLeaderStudentID: "S3", TeamMemberStudentIDs: []string{"S2"}}, nil)
	assert.Equal(t, helper.CodeConflict, helper.ErrorCode(err))

	var teams, members int64
	require.NoError(t, f.db().Model(&model.TeamModel{}).Count(&teams).Error)
	require.NoError(t, f.db().Model(&model.EventMemberModel{}).Count(&members).Error)
	assert.EqualValues(t, 1, teams)
	assert.EqualValues(t, 2, members)
}

func TestRejectTeamPayment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.TeamEvent(), dbtest.Paid())

	res, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{TeamName: "Late", TeamLeaderStudentID: "S2", TeamMemberStudentIDs: []string{"S3"}}, nil)
	require.NoError(t, err)

	err = f.svc.RejectPayment(ctx, f.actor(), dto.RejectPaymentRequest{
		PaymentTarget: dto.PaymentTarget{Type: PaymentTargetTeam, ID: res.Team.ID},
	})
	require.NoError(t, err)

	var teams, members int64
	require.NoError(t, f.db().Model(&model.TeamModel{}).Count(&teams).Error)
	require.NoError(t, f.db().Model(&model.EventMemberModel{}).Count(&members).Error)
	assert.Zero(t, teams)
	assert.Zero(t, members)

	f.d.Wait()
	rejected := f.rec.ByKind(mailer.KindPaymentRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, []string{f.students[1].Email}, rejected[0].Recipients())
	assert.Contains(t, rejected[0].Text, mailer.DefaultRejectionReason)
}

func TestRejectIndividualPaymentWithReason(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.Paid())

	res, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{StudentID: "S3", TransactionID: "BAD"}, nil)
	require.NoError(t, err)

	err = f.svc.RejectPayment(ctx, f.actor(), dto.RejectPaymentRequest{
		PaymentTarget: dto.PaymentTarget{Type: PaymentTargetIndividual, ID: res.Member.ID},
		Reason:        "Transaction ID does not match",
	})
	require.NoError(t, err)

	f.d.Wait()
	rejected := f.rec.ByKind(mailer.KindPaymentRejected)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Text, "Transaction ID does not match")

	// the student can register again
	_, err = f.svc.Register(ctx, ev.ID, dto.RegistrationInput{StudentID: "S3", TransactionID: "GOOD"}, nil)
	assert.NoError(t, err)
}

func TestRejectOnlyPendingPayments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	free, err := f.svc.Register(ctx, f.event(t).ID, dto.RegistrationInput{StudentID: "S1"}, nil)
	require.NoError(t, err)
	require.Equal(t, constants.PaymentNotApplicable, free.PaymentStatus)

	paid, err := f.svc.Register(ctx, f.event(t, dbtest.Paid()).ID, dto.RegistrationInput{StudentID: "S2", TransactionID: "UPI-1"}, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyPayment(ctx, f.actor(), dto.PaymentTarget{Type: PaymentTargetIndividual, ID: paid.Member.ID}))

	team, err := f.svc.Register(ctx, f.event(t, dbtest.TeamEvent(), dbtest.Paid()).ID,
		dto.RegistrationInput{TeamName: "Bosons", TeamLeaderStudentID: "S3", TeamMemberStudentIDs: []string{"S4"}}, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyPayment(ctx, f.actor(), dto.PaymentTarget{Type: PaymentTargetTeam, ID: team.Team.ID}))

	cases := []struct {
		name   string
		target dto.PaymentTarget
	}{
		{"free participant", dto.PaymentTarget{Type: PaymentTargetIndividual, ID: free.Member.ID}},
		{"verified participant", dto.PaymentTarget{Type: PaymentTargetIndividual, ID: paid.Member.ID}},
		{"verified team", dto.PaymentTarget{Type: PaymentTargetTeam, ID: team.Team.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.svc.RejectPayment(ctx, f.actor(), dto.RejectPaymentRequest{PaymentTarget: tc.target})
			assert.Equal(t, helper.CodeInvalidState, helper.ErrorCode(err))
		})
	}

	var teams, members int64
	require.NoError(t, f.db().Model(&model.TeamModel{}).Count(&teams).Error)
	require.NoError(t, f.db().Model(&model.EventMemberModel{}).Count(&members).Error)
	assert.EqualValues(t, 1, teams)
	assert.EqualValues(t, 4, members)

	f.d.Wait()
	assert.Empty(t, f.rec.ByKind(mailer.KindPaymentRejected))
}

func TestPaymentDecisionsRequireOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.Paid())
	stranger := dbtest.CreateUser(t, f.db(), constants.RoleOrganizer, 0, nil)

	res, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{StudentID: "S1"}, nil)
	require.NoError(t, err)

	target := dto.PaymentTarget{Type: PaymentTargetIndividual, ID: res.Member.ID}
	err = f.svc.VerifyPayment(ctx, helper.Actor{ID: stranger.ID, Role: stranger.Role}, target)
	assert.Equal(t, helper.CodeForbidden, helper.ErrorCode(err))

	err = f.svc.VerifyPayment(ctx, f.actor(), dto.PaymentTarget{Type: PaymentTargetTeam, ID: 999})
	assert.Equal(t, helper.CodeNotFound, helper.ErrorCode(err))
}
