package dto

import (
	"time"

	"campusvibe_backend/internals/features/archives/model"
)

type ListQuery struct {
	Q    string
	From *time.Time
	To   *time.Time
}

// HistoryEntry is one archived event a student was credited for.
type HistoryEntry struct {
	ArchiveID uint       `json:"archive_id"`
	EventName string     `json:"event_name"`
	Date      *time.Time `json:"date,omitempty"`
	Venue     string     `json:"venue"`
	Role      string     `json:"role"`
}

type StudentHistory struct {
	StudentID    string         `json:"student_id"`
	Name         string         `json:"name"`
	Participated []HistoryEntry `json:"participated"`
	Committee    []HistoryEntry `json:"committee"`
	Organized    []HistoryEntry `json:"organized"`
}

func Entry(a *model.EventArchiveModel, role string) HistoryEntry {
	return HistoryEntry{
		ArchiveID: a.ID,
		EventName: a.EventName,
		Date:      a.Date,
		Venue:     a.Venue,
		Role:      role,
	}
}
