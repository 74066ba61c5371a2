package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/databases/dbtest"
	"campusvibe_backend/internals/features/clubs/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	helper "campusvibe_backend/internals/helpers"
)

func TestListOrdersByName(t *testing.T) {
	db := dbtest.Open(t)
	for _, name := range []string{"Robotics", "Drama", "Music"} {
		require.NoError(t, db.Create(&model.ClubModel{ClubName: name}).Error)
	}

	clubs, err := New(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, clubs, 3)
	assert.Equal(t, []string{"Drama", "Music", "Robotics"}, []string{clubs[0].ClubName, clubs[1].ClubName, clubs[2].ClubName})
}

func TestDetailListsClubEventsLatestFirst(t *testing.T) {
	db := dbtest.Open(t)
	club := &model.ClubModel{ClubName: "Coding Club"}
	require.NoError(t, db.Create(club).Error)
	org := dbtest.CreateUser(t, db, constants.RoleOrganizer, 0, nil)

	inClub := func(start time.Time) dbtest.EventOption {
		return func(e *eventModel.EventModel) { e.ClubID = &club.ID; e.StartTime = start }
	}
	base := time.Now().UTC().Add(24 * time.Hour)
	early := dbtest.CreateEvent(t, db, org.ID, inClub(base))
	late := dbtest.CreateEvent(t, db, org.ID, inClub(base.Add(48*time.Hour)))
	dbtest.CreateEvent(t, db, org.ID)

	d, err := New(db).Detail(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coding Club", d.Club.ClubName)
	require.Len(t, d.Events, 2)
	assert.Equal(t, late.ID, d.Events[0].ID)
	assert.Equal(t, early.ID, d.Events[1].ID)

	_, err = New(db).Detail(context.Background(), 404)
	assert.Equal(t, helper.CodeNotFound, helper.ErrorCode(err))
}
