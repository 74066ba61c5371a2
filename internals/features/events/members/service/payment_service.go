package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	eventService "campusvibe_backend/internals/features/events/events/service"
	"campusvibe_backend/internals/features/events/members/dto"
	"campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

const (
	PaymentTargetTeam       = "Team"
	PaymentTargetIndividual = "Individual"
)

// PendingVerifications lists teams and individual participants waiting for
// the organizer to check their payment.
func (s *Service) PendingVerifications(ctx context.Context, actor helper.Actor, eventID uint) (*dto.PendingVerifications, error) {
	if _, err := eventService.LoadManaged(ctx, s.DB, eventID, actor); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	out := &dto.PendingVerifications{
		Teams:       []model.TeamModel{},
		Individuals: []model.EventMemberModel{},
	}
	if err := db.Where("event_id = ? AND payment_status = ?", eventID, constants.PaymentPending).
		Order("created_at ASC, id ASC").
		Find(&out.Teams).Error; err != nil {
		return nil, err
	}
	if err := db.Where("event_id = ? AND team_id IS NULL AND role = ? AND payment_status = ?",
		eventID, constants.MemberRoleParticipant, constants.PaymentPending).
		Order("created_at ASC, id ASC").
		Find(&out.Individuals).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// paymentRecord is the team or individual registration a payment decision targets.
type paymentRecord struct {
	event      *eventModel.EventModel
	team       *model.TeamModel
	member     *model.EventMemberModel
	studentID  string
	screenshot *string
}

func (s *Service) loadPaymentRecord(ctx context.Context, actor helper.Actor, target dto.PaymentTarget) (*paymentRecord, error) {
	db := s.DB.WithContext(ctx)
	rec := &paymentRecord{}
	var eventID uint

	switch target.Type {
	case PaymentTargetTeam:
		var t model.TeamModel
		if err := db.First(&t, target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrNotFound("Record not found")
			}
			return nil, err
		}
		rec.team, eventID, rec.studentID, rec.screenshot = &t, t.EventID, t.TeamLeaderStudentID, t.PaymentScreenshotPath
	case PaymentTargetIndividual:
		var m model.EventMemberModel
		if err := db.First(&m, target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrNotFound("Record not found")
			}
			return nil, err
		}
		if m.TeamID != nil || m.Role != constants.MemberRoleParticipant {
			return nil, helper.ErrValidation("Payment is tracked on the team for team members")
		}
		rec.member, eventID, rec.studentID, rec.screenshot = &m, m.EventID, m.MemberIDValue, m.PaymentScreenshotPath
	default:
		return nil, helper.ErrValidation("type must be Team or Individual")
	}

	ev, err := eventService.LoadManaged(ctx, s.DB, eventID, actor)
	if err != nil {
		return nil, err
	}
	rec.event = ev
	return rec, nil
}

// VerifyPayment marks a pending team or individual payment as Verified.
func (s *Service) VerifyPayment(ctx context.Context, actor helper.Actor, target dto.PaymentTarget) error {
	rec, err := s.loadPaymentRecord(ctx, actor, target)
	if err != nil {
		return err
	}

	var q *gorm.DB
	if rec.team != nil {
		q = s.DB.WithContext(ctx).Model(&model.TeamModel{}).Where("id = ?", rec.team.ID)
	} else {
		q = s.DB.WithContext(ctx).Model(&model.EventMemberModel{}).Where("id = ?", rec.member.ID)
	}
	res := q.Where("payment_status = ?", constants.PaymentPending).Update("payment_status", constants.PaymentVerified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrInvalidState("Payment is not pending verification")
	}
	log.Printf("[PAYMENTS] verified %s=%d event=%d by=%d", target.Type, target.ID, rec.event.ID, actor.ID)
	return nil
}

// RejectPayment deletes a registration still pending verification (a team
// takes its members with it) and tells the student why. The student has to
// register again. Verified and free registrations are left alone.
func (s *Service) RejectPayment(ctx context.Context, actor helper.Actor, in dto.RejectPaymentRequest) error {
	rec, err := s.loadPaymentRecord(ctx, actor, in.PaymentTarget)
	if err != nil {
		return err
	}

	var student academicModel.StudentModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("student_id", "email").First(&student, "student_id = ?", rec.studentID).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var res *gorm.DB
		if rec.team != nil {
			res = tx.Where("id = ? AND payment_status = ?", rec.team.ID, constants.PaymentPending).
				Delete(&model.TeamModel{})
		} else {
			res = tx.Where("id = ? AND payment_status = ?", rec.member.ID, constants.PaymentPending).
				Delete(&model.EventMemberModel{})
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrInvalidState("Payment is not pending verification")
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[PAYMENTS] rejected %s=%d event=%d by=%d", in.Type, in.ID, rec.event.ID, actor.ID)
	if student.Email != "" {
		s.Mailer.Dispatch(mailer.PaymentRejected(student.Email, rec.event.Name, in.Reason))
	}
	if rec.screenshot != nil {
		if err := s.Store.Delete(ctx, *rec.screenshot); err != nil {
			log.Printf("[PAYMENTS] delete screenshot %s: %v", *rec.screenshot, err)
		}
	}
	return nil
}
