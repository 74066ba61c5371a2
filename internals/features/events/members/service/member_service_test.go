package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	"campusvibe_backend/internals/features/events/members/dto"
	helper "campusvibe_backend/internals/helpers"
)

func TestAddStaffRoles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t)
	dbtest.CreateEmployee(t, f.db(), "E1")

	tests := []struct {
		name string
		req  dto.AddStaffRequest
		code string
	}{
		{"student committee", dto.AddStaffRequest{MemberID: "S1", MemberType: "Student", Role: constants.MemberRoleCommittee}, ""},
		{"student organiser", dto.AddStaffRequest{MemberID: "S2", MemberType: "Student", Role: constants.MemberRoleStudentOrganiser}, ""},
		{"employee organiser", dto.AddStaffRequest{MemberID: "E1", MemberType: "Employee", Role: constants.MemberRoleEmployeeOrganiser}, ""},
		{"employee as committee", dto.AddStaffRequest{MemberID: "E1", MemberType: "Employee", Role: constants.MemberRoleCommittee}, helper.CodeValidation},
		{"student as employee organiser", dto.AddStaffRequest{MemberID: "S3", MemberType: "Student", Role: constants.MemberRoleEmployeeOrganiser}, helper.CodeValidation},
		{"participant is not staff", dto.AddStaffRequest{MemberID: "S3", MemberType: "Student", Role: constants.MemberRoleParticipant}, helper.CodeValidation},
		{"unknown student", dto.AddStaffRequest{MemberID: "S99", MemberType: "Student", Role: constants.MemberRoleCommittee}, helper.CodeValidation},
		{"already on the event", dto.AddStaffRequest{MemberID: "S1", MemberType: "Student", Role: constants.MemberRoleStudentOrganiser}, helper.CodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := f.svc.AddStaff(ctx, f.actor(), ev.ID, tt.req)
			if tt.code != "" {
				assert.Equal(t, tt.code, helper.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, constants.PaymentNotApplicable, row.PaymentStatus)
			assert.Equal(t, tt.req.Role, row.Role)
		})
	}
}

func TestCheckInAndRoster(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t, dbtest.TeamEvent(), dbtest.Paid())

	res, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{TeamName: "Neutrons", TeamLeaderStudentID: "S1", TeamMemberStudentIDs: []string{"S2"}}, nil)
	require.NoError(t, err)

	roster, err := f.svc.List(ctx, f.actor(), ev.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, m := range roster {
		assert.Equal(t, "Neutrons", m.TeamName)
		assert.Equal(t, constants.PaymentPending, m.PaymentStatus)
		assert.NotEmpty(t, m.Name)
	}

	row, err := f.svc.CheckIn(ctx, f.actor(), ev.ID, res.Team.Members[0].ID, true)
	require.NoError(t, err)
	assert.True(t, row.CheckedIn)

	other := f.event(t)
	_, err = f.svc.CheckIn(ctx, f.actor(), other.ID, res.Team.Members[0].ID, true)
	assert.Equal(t, helper.CodeNotFound, helper.ErrorCode(err))
}

func TestExportWorkbook(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ev := f.event(t)

	_, err := f.svc.Register(ctx, ev.ID, dto.RegistrationInput{StudentID: "S1", CustomFormData: map[string]any{"github": "s1dev"}}, nil)
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, ev.ID, dto.RegistrationInput{StudentID: "S2"}, nil)
	require.NoError(t, err)

	data, name, err := f.svc.Export(ctx, f.actor(), ev.ID)
	require.NoError(t, err)
	assert.Contains(t, name, "-members.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "github", rows[0][len(rows[0])-1])
	assert.Equal(t, "S1", rows[1][0])
	assert.Equal(t, "s1dev", rows[1][len(rows[0])-1])
}

func TestRosterRequiresOwnership(t *testing.T) {
	f := setup(t)
	ev := f.event(t)
	other := dbtest.CreateUser(t, f.db(), constants.RoleOrganizer, 0, nil)

	_, err := f.svc.List(context.Background(), helper.Actor{ID: other.ID, Role: other.Role}, ev.ID)
	assert.Equal(t, helper.CodeForbidden, helper.ErrorCode(err))

	admin := dbtest.CreateUser(t, f.db(), constants.RoleAdmin, 0, nil)
	_, err = f.svc.List(context.Background(), helper.Actor{ID: admin.ID, Role: admin.Role}, ev.ID)
	assert.NoError(t, err)
}
