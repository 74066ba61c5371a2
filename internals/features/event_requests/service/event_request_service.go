package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/features/event_requests/dto"
	"campusvibe_backend/internals/features/event_requests/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	userService "campusvibe_backend/internals/features/users/user/service"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

type Service struct {
	DB     *gorm.DB
	Mailer mailer.Notifier
	Now    func() time.Time
}

func New(db *gorm.DB, notifier mailer.Notifier) *Service {
	return &Service{DB: db, Mailer: notifier, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Submit(ctx context.Context, req *dto.SubmitEventRequest) (*model.EventRequestModel, error) {
	req.Normalize()

	if req.Scope == constants.ScopePartOfFest {
		if req.RequestType != constants.RequestTypeSingle {
			return nil, helper.ErrValidation("Only single event requests can be part of a fest")
		}
		if req.ParentFestID == nil {
			return nil, helper.ErrValidation("parent_fest_id is required for requests that are part of a fest")
		}
		var fest eventModel.EventModel
		if err := s.DB.WithContext(ctx).Select("id", "parent_id").First(&fest, *req.ParentFestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrValidation("Parent fest not found")
			}
			return nil, err
		}
		if fest.ParentID != nil {
			return nil, helper.ErrValidation("Parent fest must be a top-level event")
		}
	}

	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	log.Printf("[EventRequest.Submit] id=%d type=%s scope=%s", m.ID, m.RequestType, m.Scope)
	return m, nil
}

// ListPendingAdmin returns requests awaiting the admin, including sub-event
// requests whose fest was deleted before its organizer decided them.
func (s *Service) ListPendingAdmin(ctx context.Context) ([]model.EventRequestModel, error) {
	var out []model.EventRequestModel
	err := s.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND parent_fest_id IS NULL)",
			constants.RequestStatusPendingAdmin, constants.RequestStatusPendingMainOrganizer).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListPendingForOrganizer returns sub-event requests waiting on fests the caller organizes.
func (s *Service) ListPendingForOrganizer(ctx context.Context, organizerID uint) ([]model.EventRequestModel, error) {
	var out []model.EventRequestModel
	err := s.DB.WithContext(ctx).
		Joins("JOIN events ON events.id = event_requests.parent_fest_id").
		Where("event_requests.status = ? AND events.organizer_id = ?", constants.RequestStatusPendingMainOrganizer, organizerID).
		Preload("ParentFest").
		Order("event_requests.created_at ASC, event_requests.id ASC").
		Find(&out).Error
	return out, err
}

// transition moves a request from one status to another only if it is still
// in the expected state. Zero affected rows means someone else decided first.
func transition(tx *gorm.DB, id uint, from, to string) error {
	res := tx.Model(&model.EventRequestModel{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrInvalidState("Request is not in status " + from)
	}
	return nil
}

// provisionError keeps typed errors such as a Conflict on an active account.
func provisionError(err error) error {
	var appErr *helper.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return helper.ErrTransaction("Failed to provision account", err)
}

func loadRequest(tx *gorm.DB, id uint) (*model.EventRequestModel, error) {
	var req model.EventRequestModel
	if err := tx.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Event request not found")
		}
		return nil, err
	}
	return &req, nil
}

func (s *Service) grantFor(req *model.EventRequestModel, role string, in dto.ApproveRequest) (userService.Grant, error) {
	limit := req.RequestedEventCount
	if in.EventCreationLimit != nil {
		limit = *in.EventCreationLimit
	}
	if in.AccessExpiryDate != nil && !in.AccessExpiryDate.After(s.Now()) {
		return userService.Grant{}, helper.ErrValidation("access_expiry_date must be in the future")
	}
	return userService.Grant{
		Email:              req.RequestorEmail,
		Role:               role,
		EventCreationLimit: limit,
		AccessExpiryDate:   in.AccessExpiryDate,
	}, nil
}

type provisioned struct {
	email    string
	password string
}

// AdminApprove decides a Pending_Admin request. Sub-event requests are handed
// to the fest organizer without creating an account; everything else is
// approved and an Organizer account is provisioned in the same transaction.
func (s *Service) AdminApprove(ctx context.Context, id uint, in dto.ApproveRequest) (*dto.DecisionResponse, error) {
	var (
		out     dto.DecisionResponse
		welcome *provisioned
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := loadRequest(tx, id)
		if err != nil {
			return err
		}
		if req.Status != constants.RequestStatusPendingAdmin {
			return helper.ErrInvalidState("Request is not pending admin approval")
		}

		if req.Scope == constants.ScopePartOfFest {
			if err := transition(tx, id, constants.RequestStatusPendingAdmin, constants.RequestStatusPendingMainOrganizer); err != nil {
				return err
			}
			req.Status = constants.RequestStatusPendingMainOrganizer
			out.Request = req
			return nil
		}

		grant, err := s.grantFor(req, constants.RoleOrganizer, in)
		if err != nil {
			return err
		}
		if err := transition(tx, id, constants.RequestStatusPendingAdmin, constants.RequestStatusApproved); err != nil {
			return err
		}
		user, password, err := userService.ProvisionAccount(tx, grant)
		if err != nil {
			return provisionError(err)
		}

		req.Status = constants.RequestStatusApproved
		out.Request = req
		out.AccountID = &user.ID
		out.AccountRole = user.Role
		welcome = &provisioned{email: user.Email, password: password}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[EventRequest.AdminApprove] id=%d status=%s", id, out.Request.Status)
	if welcome != nil {
		s.Mailer.Dispatch(mailer.Welcome(welcome.email, welcome.password))
	}
	return &out, nil
}

// AdminReject rejects a Pending_Admin request. A Pending_Main_Organizer
// request whose fest no longer exists has nobody else to decide it, so the
// admin may reject that too.
func (s *Service) AdminReject(ctx context.Context, id uint) (*model.EventRequestModel, error) {
	var out *model.EventRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := loadRequest(tx, id)
		if err != nil {
			return err
		}
		if req.Status == constants.RequestStatusPendingMainOrganizer && req.ParentFestID == nil {
			res := tx.Model(&model.EventRequestModel{}).
				Where("id = ? AND status = ? AND parent_fest_id IS NULL", id, constants.RequestStatusPendingMainOrganizer).
				Update("status", constants.RequestStatusRejected)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return helper.ErrInvalidState("Request is no longer orphaned")
			}
		} else if err := transition(tx, id, constants.RequestStatusPendingAdmin, constants.RequestStatusRejected); err != nil {
			return err
		}
		req.Status = constants.RequestStatusRejected
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[EventRequest.AdminReject] id=%d", id)
	return out, nil
}

// authorizeMainOrganizer loads a request and checks the caller organizes its parent fest.
func authorizeMainOrganizer(tx *gorm.DB, id, callerID uint) (*model.EventRequestModel, error) {
	req, err := loadRequest(tx, id)
	if err != nil {
		return nil, err
	}
	if req.ParentFestID == nil {
		return nil, helper.ErrInvalidState("Request is not attached to a fest")
	}
	var fest eventModel.EventModel
	if err := tx.Select("id", "organizer_id").First(&fest, *req.ParentFestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Parent fest not found")
		}
		return nil, err
	}
	if fest.OrganizerID != callerID {
		return nil, helper.ErrForbidden("Only the fest organizer can decide this request")
	}
	return req, nil
}

// OrganizerApprove approves a sub-event request and provisions a SubOrganizer.
func (s *Service) OrganizerApprove(ctx context.Context, callerID, id uint, in dto.ApproveRequest) (*dto.DecisionResponse, error) {
	var (
		out     dto.DecisionResponse
		welcome *provisioned
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := authorizeMainOrganizer(tx, id, callerID)
		if err != nil {
			return err
		}
		if req.Status != constants.RequestStatusPendingMainOrganizer {
			return helper.ErrInvalidState("Request is not pending fest organizer approval")
		}
		grant, err := s.grantFor(req, constants.RoleSubOrganizer, in)
		if err != nil {
			return err
		}
		if err := transition(tx, id, constants.RequestStatusPendingMainOrganizer, constants.RequestStatusApproved); err != nil {
			return err
		}
		user, password, err := userService.ProvisionAccount(tx, grant)
		if err != nil {
			return provisionError(err)
		}

		req.Status = constants.RequestStatusApproved
		out.Request = req
		out.AccountID = &user.ID
		out.AccountRole = user.Role
		welcome = &provisioned{email: user.Email, password: password}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[EventRequest.OrganizerApprove] id=%d by=%d", id, callerID)
	s.Mailer.Dispatch(mailer.Welcome(welcome.email, welcome.password))
	return &out, nil
}

// OrganizerReject rejects a sub-event request and demotes any existing
// account of the requestor to Guest in the same transaction.
func (s *Service) OrganizerReject(ctx context.Context, callerID, id uint) (*model.EventRequestModel, error) {
	var out *model.EventRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := authorizeMainOrganizer(tx, id, callerID)
		if err != nil {
			return err
		}
		if err := transition(tx, id, constants.RequestStatusPendingMainOrganizer, constants.RequestStatusRejected); err != nil {
			return err
		}
		revoked, err := userService.RevokeByEmail(tx, req.RequestorEmail)
		if err != nil {
			return helper.ErrTransaction("Failed to revoke requestor access", err)
		}
		if revoked {
			log.Printf("[EventRequest.OrganizerReject] requestor of %d demoted to Guest", id)
		}
		req.Status = constants.RequestStatusRejected
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
