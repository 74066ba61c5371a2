package service

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicModel "campusvibe_backend/internals/features/academics/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	eventService "campusvibe_backend/internals/features/events/events/service"
	"campusvibe_backend/internals/features/events/leaderboards/dto"
	"campusvibe_backend/internals/features/events/leaderboards/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Update upserts the submitted scores, sets the marks visibility flag and
// recomputes ranks, all in one transaction.
func (s *Service) Update(ctx context.Context, actor helper.Actor, eventID uint, in dto.UpdateLeaderboardRequest) ([]model.LeaderboardModel, error) {
	ev, err := eventService.LoadManaged(ctx, s.DB, eventID, actor)
	if err != nil {
		return nil, err
	}
	if !ev.HasLeaderboard {
		return nil, helper.ErrInvalidState("Leaderboard is not enabled for this event")
	}

	entries := make([]*model.LeaderboardModel, 0, len(in.Scores))
	for _, sc := range in.Scores {
		c, err := model.ParseCompetitor(sc.CompetitorType, sc.CompetitorID)
		if err != nil {
			return nil, helper.ErrValidation(err.Error())
		}
		entries = append(entries, model.NewLeaderboardEntry(eventID, c, sc.Marks))
	}

	var out []model.LeaderboardModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := checkCompetitor(tx, ev, e); err != nil {
				return err
			}
		}
		if in.ShowMarks != nil {
			if err := tx.Model(&eventModel.EventModel{}).Where("id = ?", eventID).
				Update("show_leaderboard_marks", *in.ShowMarks).Error; err != nil {
				return err
			}
		}
		for _, e := range entries {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "event_id"}, {Name: "competitor_id"}, {Name: "competitor_type"}},
				DoUpdates: clause.AssignmentColumns([]string{"marks", "updated_at"}),
			}).Create(e).Error
			if err != nil {
				return err
			}
		}
		var err error
		out, err = recomputeRanks(tx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[LEADERBOARD] event=%d scores=%d by=%d", eventID, len(entries), actor.ID)
	return out, nil
}

// checkCompetitor ensures a team belongs to the event and a student exists.
func checkCompetitor(tx *gorm.DB, ev *eventModel.EventModel, e *model.LeaderboardModel) error {
	c, err := e.Competitor()
	if err != nil {
		return helper.ErrValidation(err.Error())
	}
	var n int64
	switch v := c.(type) {
	case model.TeamCompetitor:
		err = tx.Model(&memberModel.TeamModel{}).Where("id = ? AND event_id = ?", v.TeamID, ev.ID).Count(&n).Error
	case model.IndividualCompetitor:
		err = tx.Model(&academicModel.StudentModel{}).Where("student_id = ?", v.StudentID).Count(&n).Error
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrValidation("Unknown competitor " + string(c.CompetitorType()) + " " + c.CompetitorID())
	}
	return nil
}

// DenseRanks assigns ranks to marks already sorted best first. Equal marks
// share a rank and the next distinct mark takes the following rank.
func DenseRanks(sortedMarks []int) []int {
	ranks := make([]int, len(sortedMarks))
	rank := 0
	for i, m := range sortedMarks {
		if i == 0 || m != sortedMarks[i-1] {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}

func recomputeRanks(tx *gorm.DB, eventID uint) ([]model.LeaderboardModel, error) {
	var rows []model.LeaderboardModel
	if err := tx.Where("event_id = ?", eventID).Order("marks DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	marks := make([]int, len(rows))
	for i := range rows {
		marks[i] = rows[i].Marks
	}
	for i, r := range DenseRanks(marks) {
		if rows[i].Rank != nil && *rows[i].Rank == r {
			continue
		}
		rank := r
		if err := tx.Model(&model.LeaderboardModel{}).Where("id = ?", rows[i].ID).UpdateColumn("rank", rank).Error; err != nil {
			return nil, err
		}
		rows[i].Rank = &rank
	}
	return rows, nil
}

// Standings is the organizer view with marks always included.
func (s *Service) Standings(ctx context.Context, actor helper.Actor, eventID uint) ([]model.LeaderboardModel, error) {
	if _, err := eventService.LoadManaged(ctx, s.DB, eventID, actor); err != nil {
		return nil, err
	}
	var rows []model.LeaderboardModel
	err := s.DB.WithContext(ctx).Where("event_id = ?", eventID).Order("marks DESC, id ASC").Find(&rows).Error
	return rows, err
}
