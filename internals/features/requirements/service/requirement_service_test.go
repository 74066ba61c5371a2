package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	"campusvibe_backend/internals/features/requirements/dto"
	"campusvibe_backend/internals/features/requirements/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

func strPtr(s string) *string { return &s }

func baseRequest() dto.CreateRequirementRequest {
	return dto.CreateRequirementRequest{
		Department:       "Computer Science",
		CoordinatorName:  "Meera Iyer",
		CoordinatorEmail: "Meera@Campus.test",
		CoordinatorPhone: "9876543210",
		Requirements:     model.RequirementItems{Projector: true, Chairs: true, Others: "Podium"},
	}
}

func TestCreateNotifiesInchargeHeadAndConsultant(t *testing.T) {
	db := dbtest.Open(t)
	notifier, rec := dbtest.Mailer(t)
	svc := New(db, notifier)

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	ev := dbtest.CreateEvent(t, db, org.ID)
	incharge := dbtest.CreateEmployee(t, db, "E77")
	res := &model.ResourceModel{ResourceName: "Seminar Hall", InchargeEmployeeID: incharge.EmployeeID}
	require.NoError(t, db.Create(res).Error)

	in := baseRequest()
	in.ResourceID = &res.ID
	in.AuthorizedHeadEmail = strPtr("Head@Campus.test")
	in.ConsultEmail = strPtr("head@campus.test")
	in.Message = strPtr("  Need it by 9am  ")

	out, err := svc.Create(context.Background(), helper.Actor{ID: org.ID, Role: org.Role}, ev.ID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{incharge.Email, "head@campus.test"}, out.NotifiedTo)
	assert.Equal(t, constants.ApprovalPending, out.Requirement.ApprovalStatus)
	assert.Equal(t, "meera@campus.test", out.Requirement.CoordinatorEmail)
	assert.True(t, out.Requirement.EventDate.Equal(ev.StartTime))

	notifier.Wait()
	msgs := rec.ByKind(mailer.KindResourceRequest)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "Projector")
	assert.Contains(t, msgs[0].Text, "Other: Podium")
}

func TestCreateRejections(t *testing.T) {
	db := dbtest.Open(t)
	notifier, _ := dbtest.Mailer(t)
	svc := New(db, notifier)

	owner := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	other := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	ev := dbtest.CreateEvent(t, db, owner.ID)
	missing := uint(999)

	tests := []struct {
		name  string
		actor helper.Actor
		mut   func(*dto.CreateRequirementRequest)
		code  string
	}{
		{"not the owner", helper.Actor{ID: other.ID, Role: other.Role}, nil, helper.CodeForbidden},
		{"nothing requested", helper.Actor{ID: owner.ID, Role: owner.Role}, func(r *dto.CreateRequirementRequest) {
			r.Requirements = model.RequirementItems{Others: "  "}
		}, helper.CodeValidation},
		{"unknown resource", helper.Actor{ID: owner.ID, Role: owner.Role}, func(r *dto.CreateRequirementRequest) {
			r.ResourceID = &missing
		}, helper.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRequest()
			if tt.mut != nil {
				tt.mut(&in)
			}
			_, err := svc.Create(context.Background(), tt.actor, ev.ID, in)
			assert.Equal(t, tt.code, helper.ErrorCode(err))
		})
	}

	var n int64
	require.NoError(t, db.Model(&model.EventRequirementModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListAndUpdateStatus(t *testing.T) {
	db := dbtest.Open(t)
	notifier, _ := dbtest.Mailer(t)
	svc := New(db, notifier)
	ctx := context.Background()

	org := dbtest.CreateUser(t, db, constants.RoleAdmin, 0, nil)
	actor := helper.Actor{ID: org.ID, Role: org.Role}
	ev := dbtest.CreateEvent(t, db, org.ID)

	first, err := svc.Create(ctx, actor, ev.ID, baseRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, actor, ev.ID, baseRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, first.Requirement.ID, constants.ApprovalApproved)
	require.NoError(t, err)
	assert.Equal(t, constants.ApprovalApproved, updated.ApprovalStatus)

	rows, total, err := svc.List(ctx, dto.ListQuery{Status: constants.ApprovalPending}, helper.Paging{Page: 1, PerPage: 20, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.NotEqual(t, first.Requirement.ID, rows[0].ID)

	_, err = svc.UpdateStatus(ctx, 12345, constants.ApprovalRejected)
	assert.Equal(t, helper.CodeNotFound, helper.ErrorCode(err))
}
