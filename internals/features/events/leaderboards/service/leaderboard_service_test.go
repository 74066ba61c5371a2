package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	"campusvibe_backend/internals/features/events/leaderboards/dto"
	"campusvibe_backend/internals/features/events/leaderboards/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
)

func TestDenseRanks(t *testing.T) {
	tests := []struct {
		name  string
		marks []int
		want  []int
	}{
		{"empty", nil, []int{}},
		{"distinct", []int{90, 80, 70}, []int{1, 2, 3}},
		{"ties share a rank", []int{90, 90, 80, 70, 70, 60}, []int{1, 1, 2, 3, 3, 4}},
		{"all equal", []int{5, 5, 5}, []int{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DenseRanks(tt.marks))
		})
	}
}

func withLeaderboard() dbtest.EventOption {
	return func(e *eventModel.EventModel) { e.HasLeaderboard = true }
}

func TestUpdateUpsertsAndRanks(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db)
	ctx := context.Background()

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	actor := helper.Actor{ID: org.ID, Role: org.Role}
	ev := dbtest.CreateEvent(t, db, org.ID, dbtest.TeamEvent(), withLeaderboard())

	var teams []*memberModel.TeamModel
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		tm := &memberModel.TeamModel{EventID: ev.ID, TeamName: name, TeamLeaderStudentID: "L-" + name, PaymentStatus: constants.PaymentNotApplicable}
		require.NoError(t, db.Create(tm).Error)
		teams = append(teams, tm)
	}
	id := func(i int) string { return strconv.FormatUint(uint64(teams[i].ID), 10) }

	show := true
	rows, err := svc.Update(ctx, actor, ev.ID, dto.UpdateLeaderboardRequest{
		ShowMarks: &show,
		Scores: []dto.ScoreInput{
			{CompetitorID: id(0), CompetitorType: "Team", Marks: 70},
			{CompetitorID: id(1), CompetitorType: "Team", Marks: 90},
			{CompetitorID: id(2), CompetitorType: "Team", Marks: 70},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, id(1), rows[0].CompetitorIDValue)
	assert.Equal(t, 1, *rows[0].Rank)
	assert.Equal(t, 2, *rows[1].Rank)
	assert.Equal(t, 2, *rows[2].Rank)

	var stored eventModel.EventModel
	require.NoError(t, db.First(&stored, ev.ID).Error)
	assert.True(t, stored.ShowLeaderboardMarks)

	// second submission updates in place
	rows, err = svc.Update(ctx, actor, ev.ID, dto.UpdateLeaderboardRequest{
		Scores: []dto.ScoreInput{{CompetitorID: id(0), CompetitorType: "Team", Marks: 95}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, id(0), rows[0].CompetitorIDValue)
	assert.Equal(t, 1, *rows[0].Rank)
	assert.Equal(t, 2, *rows[1].Rank)
	assert.Equal(t, 3, *rows[2].Rank)

	var count int64
	require.NoError(t, db.Model(&model.LeaderboardModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	require.NoError(t, db.First(&stored, ev.ID).Error)
	assert.True(t, stored.ShowLeaderboardMarks)
}

func TestUpdateRejectsUnknownCompetitorAtomically(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db)
	ctx := context.Background()

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	actor := helper.Actor{ID: org.ID, Role: org.Role}
	course := dbtest.CreateCourse(t, db, "MBA")
	dbtest.CreateStudent(t, db, "S1", course.ID, 1, "A")
	ev := dbtest.CreateEvent(t, db, org.ID, withLeaderboard())

	show := true
	_, err := svc.Update(ctx, actor, ev.ID, dto.UpdateLeaderboardRequest{
		ShowMarks: &show,
		Scores: []dto.ScoreInput{
			{CompetitorID: "S1", CompetitorType: "Individual", Marks: 10},
			{CompetitorID: "S404", CompetitorType: "Individual", Marks: 20},
		},
	})
	assert.Equal(t, helper.CodeValidation, helper.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&model.LeaderboardModel{}).Count(&count).Error)
	assert.Zero(t, count)

	var stored eventModel.EventModel
	require.NoError(t, db.First(&stored, ev.ID).Error)
	assert.False(t, stored.ShowLeaderboardMarks)
}

func TestUpdateGuards(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db)
	ctx := context.Background()

	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	other := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)
	plain := dbtest.CreateEvent(t, db, org.ID)
	ranked := dbtest.CreateEvent(t, db, org.ID, withLeaderboard())

	_, err := svc.Update(ctx, helper.Actor{ID: org.ID, Role: org.Role}, plain.ID, dto.UpdateLeaderboardRequest{})
	assert.Equal(t, helper.CodeInvalidState, helper.ErrorCode(err))

	_, err = svc.Update(ctx, helper.Actor{ID: other.ID, Role: other.Role}, ranked.ID, dto.UpdateLeaderboardRequest{})
	assert.Equal(t, helper.CodeForbidden, helper.ErrorCode(err))

	_, err = svc.Update(ctx, helper.Actor{ID: org.ID, Role: org.Role}, ranked.ID, dto.UpdateLeaderboardRequest{
		Scores: []dto.ScoreInput{{CompetitorID: "abc", CompetitorType: "Team", Marks: 1}},
	})
	assert.Equal(t, helper.CodeValidation, helper.ErrorCode(err))
}
