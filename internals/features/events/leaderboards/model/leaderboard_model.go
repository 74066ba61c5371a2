package model

import (
	"fmt"
	"strconv"
	"time"

	eventModel "campusvibe_backend/internals/features/events/events/model"
)

type CompetitorType string

const (
	CompetitorTeam       CompetitorType = "Team"
	CompetitorIndividual CompetitorType = "Individual"
)

// Competitor is either a team or an individual student.
type Competitor interface {
	CompetitorType() CompetitorType
	CompetitorID() string
	isCompetitor()
}

type TeamCompetitor struct{ TeamID uint }

func (TeamCompetitor) CompetitorType() CompetitorType { return CompetitorTeam }
func (c TeamCompetitor) CompetitorID() string         { return strconv.FormatUint(uint64(c.TeamID), 10) }
func (TeamCompetitor) isCompetitor()                  {}

type IndividualCompetitor struct{ StudentID string }

func (IndividualCompetitor) CompetitorType() CompetitorType { return CompetitorIndividual }
func (c IndividualCompetitor) CompetitorID() string         { return c.StudentID }
func (IndividualCompetitor) isCompetitor()                  {}

func ParseCompetitor(competitorType, id string) (Competitor, error) {
	if id == "" {
		return nil, fmt.Errorf("competitor id is required")
	}
	switch CompetitorType(competitorType) {
	case CompetitorTeam:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid team id %q", id)
		}
		return TeamCompetitor{TeamID: uint(n)}, nil
	case CompetitorIndividual:
		return IndividualCompetitor{StudentID: id}, nil
	}
	return nil, fmt.Errorf("unknown competitor type %q", competitorType)
}

type LeaderboardModel struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	EventID             uint           `gorm:"column:event_id;not null;uniqueIndex:uq_leaderboard_competitor" json:"event_id"`
	CompetitorIDValue   string         `gorm:"column:competitor_id;size:50;not null;uniqueIndex:uq_leaderboard_competitor" json:"competitor_id"`
	CompetitorTypeValue CompetitorType `gorm:"column:competitor_type;size:20;not null;uniqueIndex:uq_leaderboard_competitor" json:"competitor_type"`
	Marks               int            `gorm:"not null;default:0" json:"marks"`
	Rank                *int           `json:"rank,omitempty"`

	Event *eventModel.EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeaderboardModel) TableName() string { return "leaderboards" }

func NewLeaderboardEntry(eventID uint, c Competitor, marks int) *LeaderboardModel {
	return &LeaderboardModel{
		EventID:             eventID,
		CompetitorIDValue:   c.CompetitorID(),
		CompetitorTypeValue: c.CompetitorType(),
		Marks:               marks,
	}
}

func (l *LeaderboardModel) Competitor() (Competitor, error) {
	return ParseCompetitor(string(l.CompetitorTypeValue), l.CompetitorIDValue)
}
