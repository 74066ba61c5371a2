package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
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
	msgRegistrationClosed = "Registration for this event is closed."
	msgAlreadyRegistered  = "Already registered for this event."
)

// Register signs a student, or a team led by a student, up for an event.
// Every row of one attempt is written in a single transaction; the
// confirmation email goes out only after commit.
func (s *Service) Register(ctx context.Context, eventID uint, in dto.RegistrationInput, screenshot *multipart.FileHeader) (*dto.RegistrationResult, error) {
	ev, err := eventService.FindEvent(ctx, s.DB, eventID)
	if err != nil {
		if helper.ErrorCode(err) == helper.CodeNotFound {
			return nil, helper.ErrForbidden(msgRegistrationClosed)
		}
		return nil, err
	}
	if ev.RegistrationLocked {
		return nil, helper.ErrForbidden(msgRegistrationClosed)
	}

	custom, err := encodeCustom(in.CustomFormData)
	if err != nil {
		return nil, err
	}

	var pay paymentFields
	if ev.IsPaidEvent {
		if tx := strings.TrimSpace(in.TransactionID); tx != "" {
			pay.transactionID = &tx
		}
		if screenshot != nil {
			url, err := s.Store.Save(ctx, screenshotFolder, screenshot)
			if err != nil {
				return nil, err
			}
			pay.screenshot = &url
		}
	}

	var (
		res   *dto.RegistrationResult
		email string
	)
	if ev.IsTeamEvent() {
		res, email, err = s.registerTeam(ctx, ev, in, custom, pay)
	} else {
		res, email, err = s.registerIndividual(ctx, ev, in, custom, pay)
	}
	if err != nil {
		if pay.screenshot != nil {
			_ = s.Store.Delete(context.Background(), *pay.screenshot)
		}
		return nil, err
	}

	log.Printf("[REGISTRATION] event=%d type=%s payment=%s", ev.ID, res.RegistrationType, res.PaymentStatus)
	s.Mailer.Dispatch(mailer.Registration(email, ev.Name, res.PaymentStatus == constants.PaymentPending))
	return res, nil
}

type paymentFields struct {
	transactionID *string
	screenshot    *string
}

func encodeCustom(data map[string]any) (datatypes.JSON, error) {
	if len(data) == 0 {
		return nil, nil
	}
	raw, err := sonic.Marshal(data)
	if err != nil {
		return nil, helper.ErrValidation("Invalid custom form data")
	}
	return datatypes.JSON(raw), nil
}

func (s *Service) registerIndividual(ctx context.Context, ev *eventModel.EventModel, in dto.RegistrationInput, custom datatypes.JSON, pay paymentFields) (*dto.RegistrationResult, string, error) {
	if in.StudentID == "" {
		return nil, "", helper.ErrValidation("student_id is required")
	}

	var student academicModel.StudentModel
	member := model.NewEventMember(ev.ID, model.StudentMember{StudentID: in.StudentID}, constants.MemberRoleParticipant)
	member.PaymentStatus = ev.InitialPaymentStatus()
	member.CustomFormData = custom
	member.TransactionID = pay.transactionID
	member.PaymentScreenshotPath = pay.screenshot

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, "student_id = ?", in.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrValidation("Student with ID " + in.StudentID + " not found.")
			}
			return err
		}
		taken, err := registered(tx, ev.ID, []string{in.StudentID})
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return helper.ErrConflict(msgAlreadyRegistered)
		}
		return duplicateAsConflict(tx.Create(member).Error, msgAlreadyRegistered)
	})
	if err != nil {
		return nil, "", err
	}

	return &dto.RegistrationResult{
		RegistrationType: constants.RegistrationIndividual,
		PaymentStatus:    member.PaymentStatus,
		Member:           member,
	}, student.Email, nil
}

// registerTeam creates the team with its payment fields and one participant
// row per distinct student. Teammate rows carry no payment status.
func (s *Service) registerTeam(ctx context.Context, ev *eventModel.EventModel, in dto.RegistrationInput, custom datatypes.JSON, pay paymentFields) (*dto.RegistrationResult, string, error) {
	if in.TeamName == "" {
		return nil, "", helper.ErrValidation("team_name is required")
	}
	if in.TeamLeaderStudentID == "" {
		return nil, "", helper.ErrValidation("team_leader_student_id is required")
	}
	ids := in.TeamStudentIDs()

	team := &model.TeamModel{
		EventID:               ev.ID,
		TeamName:              in.TeamName,
		TeamLeaderStudentID:   in.TeamLeaderStudentID,
		TransactionID:         pay.transactionID,
		PaymentScreenshotPath: pay.screenshot,
		PaymentStatus:         ev.InitialPaymentStatus(),
		CustomFormData:        custom,
	}
	var leader academicModel.StudentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&leader, "student_id = ?", in.TeamLeaderStudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrValidation("Team Leader Student ID " + in.TeamLeaderStudentID + " not found.")
			}
			return err
		}
		if missing, err := missingStudents(tx, ids); err != nil {
			return err
		} else if len(missing) > 0 {
			return helper.ErrValidation("Unknown student IDs: " + strings.Join(missing, ", "))
		}
		taken, err := registered(tx, ev.ID, ids)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return helper.ErrConflict("Already registered for this event: " + strings.Join(taken, ", "))
		}

		if err := tx.Create(team).Error; err != nil {
			return err
		}
		for _, id := range ids {
			m := model.NewEventMember(ev.ID, model.StudentMember{StudentID: id}, constants.MemberRoleParticipant)
			m.TeamID = &team.ID
			if err := tx.Create(m).Error; err != nil {
				return duplicateAsConflict(err, msgAlreadyRegistered)
			}
			team.Members = append(team.Members, *m)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return &dto.RegistrationResult{
		RegistrationType: constants.RegistrationTeam,
		PaymentStatus:    team.PaymentStatus,
		Team:             team,
	}, leader.Email, nil
}

func missingStudents(tx *gorm.DB, ids []string) ([]string, error) {
	var found []string
	if err := tx.Model(&academicModel.StudentModel{}).Where("student_id IN ?", ids).Pluck("student_id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// registered returns which of the students already hold a row on the event.
func registered(tx *gorm.DB, eventID uint, studentIDs []string) ([]string, error) {
	var taken []string
	err := tx.Model(&model.EventMemberModel{}).
		Where("event_id = ? AND member_type = ? AND member_id IN ?", eventID, model.MemberTypeStudent, studentIDs).
		Order("member_id").
		Pluck("member_id", &taken).Error
	return taken, err
}
