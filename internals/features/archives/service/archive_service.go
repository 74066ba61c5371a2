package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	"campusvibe_backend/internals/features/archives/dto"
	"campusvibe_backend/internals/features/archives/model"
	helper "campusvibe_backend/internals/helpers"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// List returns archives newest first.
func (s *Service) List(ctx context.Context, q dto.ListQuery, p helper.Paging) ([]model.EventArchiveModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.EventArchiveModel{})
	if term := strings.TrimSpace(q.Q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		db = db.Where("LOWER(event_name) LIKE ? OR LOWER(organizer_name) LIKE ?", like, like)
	}
	if q.From != nil {
		db = db.Where("event_archives.date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("event_archives.date <= ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EventArchiveModel
	if err := db.Order("event_archives.date DESC, event_archives.id DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.EventArchiveModel, error) {
	var a model.EventArchiveModel
	err := s.DB.WithContext(ctx).
		Preload("Participated").
		Preload("Committee").
		Preload("Organized").
		Preload("EmployeeOrganized").
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound("Archive not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// StudentHistory lists every archived event the student was credited for,
// grouped by the role they held.
func (s *Service) StudentHistory(ctx context.Context, studentID string) (*dto.StudentHistory, error) {
	db := s.DB.WithContext(ctx)

	var st academicModel.StudentModel
	if err := db.First(&st, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Student not found")
		}
		return nil, err
	}

	out := &dto.StudentHistory{
		StudentID:    st.StudentID,
		Name:         st.Name,
		Participated: []dto.HistoryEntry{},
		Committee:    []dto.HistoryEntry{},
		Organized:    []dto.HistoryEntry{},
	}

	load := func(table string, role string, dst *[]dto.HistoryEntry) error {
		var archives []model.EventArchiveModel
		if err := db.
			Joins("JOIN "+table+" h ON h.event_archive_id = event_archives.id").
			Where("h.student_id = ?", studentID).
			Order("event_archives.date DESC, event_archives.id DESC").
			Find(&archives).Error; err != nil {
			return err
		}
		for i := range archives {
			*dst = append(*dst, dto.Entry(&archives[i], role))
		}
		return nil
	}

	if err := load(model.ParticipatedEventModel{}.TableName(), constants.MemberRoleParticipant, &out.Participated); err != nil {
		return nil, err
	}
	if err := load(model.CommitteeEventModel{}.TableName(), constants.MemberRoleCommittee, &out.Committee); err != nil {
		return nil, err
	}
	if err := load(model.OrganizedEventModel{}.TableName(), constants.MemberRoleStudentOrganiser, &out.Organized); err != nil {
		return nil, err
	}
	return out, nil
}
