package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	eventService "campusvibe_backend/internals/features/events/events/service"
	"campusvibe_backend/internals/features/requirements/dto"
	"campusvibe_backend/internals/features/requirements/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

type Service struct {
	DB     *gorm.DB
	Mailer mailer.Notifier
}

func New(db *gorm.DB, notifier mailer.Notifier) *Service {
	return &Service{DB: db, Mailer: notifier}
}

// Create files a facilities request for an event and mails the resource
// in-charge, the authorized head and the consultant.
func (s *Service) Create(ctx context.Context, actor helper.Actor, eventID uint, in dto.CreateRequirementRequest) (*dto.CreateResult, error) {
	ev, err := eventService.LoadManaged(ctx, s.DB, eventID, actor)
	if err != nil {
		return nil, err
	}
	in.Normalize()

	items := in.Requirements.Items()
	if len(items) == 0 {
		return nil, helper.ErrValidation("Select at least one requirement")
	}

	var resource *model.ResourceModel
	if in.ResourceID != nil {
		var r model.ResourceModel
		if err := s.DB.WithContext(ctx).Preload("Incharge").First(&r, *in.ResourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrValidation("Unknown resource")
			}
			return nil, err
		}
		resource = &r
	}

	reqJSON, err := sonic.Marshal(in.Requirements)
	if err != nil {
		return nil, err
	}
	row := &model.EventRequirementModel{
		EventID:             ev.ID,
		ResourceID:          in.ResourceID,
		Department:          in.Department,
		CoordinatorName:     in.CoordinatorName,
		CoordinatorEmail:    in.CoordinatorEmail,
		CoordinatorPhone:    in.CoordinatorPhone,
		Requirements:        datatypes.JSON(reqJSON),
		EventDate:           ev.StartTime,
		ApprovalStatus:      constants.ApprovalPending,
		Message:             in.Message,
		AuthorizedHeadEmail: in.AuthorizedHeadEmail,
		ConsultEmail:        in.ConsultEmail,
	}
	if in.EventDate != nil {
		row.EventDate = *in.EventDate
	}
	if len(in.AssignedHeads) > 0 {
		heads, err := sonic.Marshal(in.AssignedHeads)
		if err != nil {
			return nil, err
		}
		row.AssignedHeads = datatypes.JSON(heads)
	}

	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	row.Resource = resource

	type recipient struct{ email, name string }
	var recipients []recipient
	if resource != nil && resource.Incharge != nil {
		recipients = append(recipients, recipient{resource.Incharge.Email, resource.Incharge.Name})
	}
	if row.AuthorizedHeadEmail != nil {
		recipients = append(recipients, recipient{email: *row.AuthorizedHeadEmail})
	}
	if row.ConsultEmail != nil {
		recipients = append(recipients, recipient{email: *row.ConsultEmail})
	}

	message := ""
	if row.Message != nil {
		message = *row.Message
	}
	seen := map[string]bool{}
	res := &dto.CreateResult{Requirement: row, NotifiedTo: []string{}}
	var msgs []*mailer.Message
	for _, r := range recipients {
		key := strings.ToLower(r.email)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		msgs = append(msgs, mailer.ResourceRequest(mailer.ResourceRequestData{
			RecipientEmail: r.email,
			RecipientName:  r.name,
			Coordinator:    row.CoordinatorName,
			EventName:      ev.Name,
			EventDate:      row.EventDate,
			Items:          items,
			Message:        message,
		}))
		res.NotifiedTo = append(res.NotifiedTo, r.email)
	}
	s.Mailer.Dispatch(msgs...)

	log.Printf("[REQUIREMENTS] event=%d requirement=%d notified=%d", ev.ID, row.ID, len(msgs))
	return res, nil
}

func (s *Service) List(ctx context.Context, q dto.ListQuery, p helper.Paging) ([]model.EventRequirementModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.EventRequirementModel{})
	if q.Status != "" {
		db = db.Where("approval_status = ?", q.Status)
	}
	if q.EventID != 0 {
		db = db.Where("event_id = ?", q.EventID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EventRequirementModel
	err := db.Preload("Resource").Order("created_at DESC, id DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error
	return rows, total, err
}

func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*model.EventRequirementModel, error) {
	db := s.DB.WithContext(ctx)
	res := db.Model(&model.EventRequirementModel{}).Where("id = ?", id).Update("approval_status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound("Requirement not found")
	}
	var row model.EventRequirementModel
	if err := db.Preload("Resource").First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
