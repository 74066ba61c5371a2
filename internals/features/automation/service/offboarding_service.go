// Package service holds the scheduled account sweeps: off-boarding of
// organizers whose access window closed, and the advance expiry warning.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"campusvibe_backend/internals/configs"
	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	archiveModel "campusvibe_backend/internals/features/archives/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	memberService "campusvibe_backend/internals/features/events/members/service"
	userModel "campusvibe_backend/internals/features/users/user/model"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/metrics"
	"campusvibe_backend/internals/helpers/report"
	"campusvibe_backend/internals/helpers/storage"
)

// ErrRunInProgress is returned when another sweep holds the lock.
var ErrRunInProgress = errors.New("automation: a sweep is already running")

// Certificate titles by member role.
var certificateByRole = map[string]string{
	constants.MemberRoleParticipant:      "Certificate of Participation",
	constants.MemberRoleCommittee:        "Certificate of Appreciation",
	constants.MemberRoleStudentOrganiser: "Certificate of Leadership",
}

type Offboarder struct {
	DB     *gorm.DB
	Store  storage.Store
	Mailer mailer.Notifier
	Now    func() time.Time

	// AdminEmail receives a copy of every final report when set.
	AdminEmail string
	// ContinueOnError keeps sweeping past a failed user. By default the
	// first failure aborts the run; users already committed stay off-boarded.
	ContinueOnError bool

	// shared by cron and CLI runs in the same process
	mu sync.Mutex
}

func New(db *gorm.DB, store storage.Store, notifier mailer.Notifier) *Offboarder {
	return &Offboarder{
		DB:              db,
		Store:           store,
		Mailer:          notifier,
		Now:             func() time.Time { return time.Now().UTC() },
		AdminEmail:      configs.GetEnv("ADMIN_EMAIL"),
		ContinueOnError: configs.GetEnvBool("AUTOMATION_CONTINUE_ON_ERROR", false),
	}
}

type RunSummary struct {
	Candidates     int `json:"candidates"`
	Offboarded     int `json:"offboarded"`
	Failed         int `json:"failed"`
	EventsArchived int `json:"events_archived"`
}

// Run off-boards every non-Guest user whose access expired. Each user is one
// transaction: archive and purge their events, then demote to Guest with no
// creation slots. Emails go out only after that user's commit.
func (o *Offboarder) Run(ctx context.Context) (*RunSummary, error) {
	if !o.mu.TryLock() {
		metrics.AutomationRuns.WithLabelValues("offboarding", "skipped").Inc()
		return nil, ErrRunInProgress
	}
	defer o.mu.Unlock()

	now := o.Now()
	var users []userModel.UserModel
	if err := o.DB.WithContext(ctx).
		Where("role <> ? AND access_expiry_date IS NOT NULL AND access_expiry_date <= ?", constants.RoleGuest, now).
		Order("id ASC").
		Find(&users).Error; err != nil {
		metrics.AutomationRuns.WithLabelValues("offboarding", "error").Inc()
		return nil, err
	}

	sum := &RunSummary{Candidates: len(users)}
	if len(users) == 0 {
		log.Println("[AUTOMATION] off-boarding: no users to revoke")
		metrics.AutomationRuns.WithLabelValues("offboarding", "ok").Inc()
		return sum, nil
	}

	var errs []error
	for i := range users {
		u := &users[i]
		archived, err := o.offboardUser(ctx, u)
		if err != nil {
			sum.Failed++
			metrics.OffboardedUsers.WithLabelValues("failed").Inc()
			log.Printf("[AUTOMATION] off-boarding user=%d failed: %v", u.ID, err)
			errs = append(errs, fmt.Errorf("user %d: %w", u.ID, err))
			if !o.ContinueOnError {
				break
			}
			continue
		}
		sum.Offboarded++
		sum.EventsArchived += archived
		metrics.OffboardedUsers.WithLabelValues("ok").Inc()
		log.Printf("[AUTOMATION] user=%d set to Guest, %d event(s) archived", u.ID, archived)
	}

	err := errors.Join(errs...)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.AutomationRuns.WithLabelValues("offboarding", result).Inc()
	log.Printf("[AUTOMATION] off-boarding done: candidates=%d ok=%d failed=%d events=%d",
		sum.Candidates, sum.Offboarded, sum.Failed, sum.EventsArchived)
	return sum, err
}

// purge is the post-commit work for one archived event.
type purge struct {
	messages []*mailer.Message
	banner   *string
}

func (o *Offboarder) offboardUser(ctx context.Context, user *userModel.UserModel) (int, error) {
	var purged []purge

	err := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purged = purged[:0]

		var owned []eventModel.EventModel
		if err := tx.Where("organizer_id = ?", user.ID).Order("id ASC").Find(&owned).Error; err != nil {
			return err
		}

		seen := map[uint]bool{}
		for i := range owned {
			ev := &owned[i]
			if seen[ev.ID] {
				continue
			}
			// sub-events go with their fest, so archive them first
			var subs []eventModel.EventModel
			if err := tx.Where("parent_id = ?", ev.ID).Order("id ASC").Find(&subs).Error; err != nil {
				return err
			}
			for j := range subs {
				if seen[subs[j].ID] {
					continue
				}
				p, err := o.archiveEvent(tx, &subs[j])
				if err != nil {
					return fmt.Errorf("archive event %d: %w", subs[j].ID, err)
				}
				seen[subs[j].ID] = true
				purged = append(purged, p)
			}

			p, err := o.archiveEvent(tx, ev)
			if err != nil {
				return fmt.Errorf("archive event %d: %w", ev.ID, err)
			}
			seen[ev.ID] = true
			purged = append(purged, p)

			if err := tx.Delete(&eventModel.EventModel{}, ev.ID).Error; err != nil {
				return fmt.Errorf("delete event %d: %w", ev.ID, err)
			}
		}

		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"role":                 constants.RoleGuest,
				"event_creation_limit": 0,
			}).Error
	})
	if err != nil {
		return 0, err
	}

	for _, p := range purged {
		o.Mailer.Dispatch(p.messages...)
		if p.banner != nil && o.Store != nil {
			if err := o.Store.Delete(context.Background(), *p.banner); err != nil {
				log.Printf("[AUTOMATION] delete banner %s: %v", *p.banner, err)
			}
		}
	}
	metrics.ArchivedEvents.Add(float64(len(purged)))
	return len(purged), nil
}

// archiveEvent writes the archive summary and one history row per checked-in
// member whose payment is settled. The event row itself is left for the
// caller to delete.
func (o *Offboarder) archiveEvent(tx *gorm.DB, ev *eventModel.EventModel) (purge, error) {
	var organizer userModel.UserModel
	if err := tx.Select("id", "email").First(&organizer, ev.OrganizerID).Error; err != nil {
		return purge{}, err
	}

	var members []memberModel.EventMemberModel
	if err := tx.Where("event_id = ?", ev.ID).Order("id ASC").Find(&members).Error; err != nil {
		return purge{}, err
	}
	var teams []memberModel.TeamModel
	if err := tx.Where("event_id = ?", ev.ID).Find(&teams).Error; err != nil {
		return purge{}, err
	}
	teamByID := make(map[uint]*memberModel.TeamModel, len(teams))
	for i := range teams {
		teamByID[teams[i].ID] = &teams[i]
	}

	date := ev.StartTime
	archive := &archiveModel.EventArchiveModel{
		OriginalEventID: ev.ID,
		EventName:       ev.Name,
		OrganizerName:   organizer.Email,
		Date:            &date,
		Venue:           ev.Venue,
	}

	var certified []string
	for i := range members {
		m := &members[i]
		if !m.CheckedIn {
			continue
		}
		archive.ParticipantCount++

		var team *memberModel.TeamModel
		if m.TeamID != nil {
			team = teamByID[*m.TeamID]
		}
		if !m.PaymentSettled(ev, team) {
			continue
		}

		switch m.MemberTypeValue {
		case memberModel.MemberTypeStudent:
			sid := m.MemberIDValue
			switch m.Role {
			case constants.MemberRoleParticipant:
				archive.Participated = append(archive.Participated, archiveModel.ParticipatedEventModel{StudentID: sid})
			case constants.MemberRoleCommittee:
				archive.Committee = append(archive.Committee, archiveModel.CommitteeEventModel{StudentID: sid})
			case constants.MemberRoleStudentOrganiser:
				archive.Organized = append(archive.Organized, archiveModel.OrganizedEventModel{StudentID: sid})
			default:
				continue
			}
			certified = append(certified, sid)
		case memberModel.MemberTypeEmployee:
			if m.Role == constants.MemberRoleEmployeeOrganiser {
				archive.EmployeeOrganized = append(archive.EmployeeOrganized,
					archiveModel.EmployeeOrganizedEventModel{EmployeeID: m.MemberIDValue})
			}
		}
	}

	if err := tx.Create(archive).Error; err != nil {
		return purge{}, err
	}

	msgs, err := o.certificates(tx, ev, members, certified)
	if err != nil {
		return purge{}, err
	}

	sheet, err := finalReport(tx, ev, archive)
	if err != nil {
		return purge{}, err
	}
	msgs = append(msgs, mailer.FinalReport(organizer.Email, ev.Name, sheet))
	if o.AdminEmail != "" && o.AdminEmail != organizer.Email {
		msgs = append(msgs, mailer.FinalReport(o.AdminEmail, ev.Name, sheet))
	}

	return purge{messages: msgs, banner: ev.BannerURL}, nil
}

func (o *Offboarder) certificates(tx *gorm.DB, ev *eventModel.EventModel, members []memberModel.EventMemberModel, studentIDs []string) ([]*mailer.Message, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var students []academicModel.StudentModel
	if err := tx.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]academicModel.StudentModel, len(students))
	for _, st := range students {
		byID[st.StudentID] = st
	}
	roleOf := make(map[string]string, len(members))
	for _, m := range members {
		if m.IsStudent() {
			roleOf[m.MemberIDValue] = m.Role
		}
	}

	msgs := make([]*mailer.Message, 0, len(studentIDs))
	for _, id := range studentIDs {
		st, ok := byID[id]
		if !ok {
			continue
		}
		msgs = append(msgs, mailer.Certificate(st.Email, st.Name, certificateByRole[roleOf[id]], ev.Name))
	}
	return msgs, nil
}

// finalReport summarises the event and lists its full roster.
func finalReport(tx *gorm.DB, ev *eventModel.EventModel, archive *archiveModel.EventArchiveModel) ([]byte, error) {
	roster, err := memberService.Roster(tx, ev.ID)
	if err != nil {
		return nil, err
	}

	credited := len(archive.Participated) + len(archive.Committee) + len(archive.Organized) + len(archive.EmployeeOrganized)
	summary := report.Sheet{
		Name:    "Summary",
		Headers: []string{"Event", "Date", "Venue", "Registered", "Checked In", "Credited"},
	}
	summary.Add(ev.Name, ev.StartTime.Format("2006-01-02 15:04"), ev.Venue, len(roster), archive.ParticipantCount, credited)

	members := report.Sheet{
		Name:    "Members",
		Headers: []string{"Member ID", "Type", "Name", "Role", "Team", "Payment Status", "Checked In"},
	}
	for _, m := range roster {
		members.Add(m.MemberID, m.MemberType, m.Name, m.Role, m.TeamName, m.PaymentStatus, m.CheckedIn)
	}
	return report.Build(summary, members)
}
