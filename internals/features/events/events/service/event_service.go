package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	clubModel "campusvibe_backend/internals/features/clubs/model"
	requestModel "campusvibe_backend/internals/features/event_requests/model"
	"campusvibe_backend/internals/features/events/events/dto"
	"campusvibe_backend/internals/features/events/events/model"
	boardModel "campusvibe_backend/internals/features/events/leaderboards/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	userModel "campusvibe_backend/internals/features/users/user/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
)

const (
	bannerFolder = "events/banners"
	qrFolder     = "events/payment-qr"
)

type Service struct {
	DB     *gorm.DB
	Store  storage.Store
	Mailer mailer.Notifier
	Now    func() time.Time
}

func New(db *gorm.DB, store storage.Store, notifier mailer.Notifier) *Service {
	return &Service{DB: db, Store: store, Mailer: notifier, Now: func() time.Time { return time.Now().UTC() }}
}

/* ===================== reads ===================== */

func (s *Service) List(ctx context.Context, q dto.ListQuery, p helper.Paging) ([]model.EventModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&model.EventModel{})
	if q.ClubID != nil {
		tx = tx.Where("club_id = ?", *q.ClubID)
	}
	if q.ParentID != nil {
		tx = tx.Where("parent_id = ?", *q.ParentID)
	} else if q.TopLevel {
		tx = tx.Where("parent_id IS NULL")
	}
	if q.Upcoming {
		tx = tx.Where("start_time >= ?", s.Now())
	}
	if v := strings.ToLower(strings.TrimSpace(q.Q)); v != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+v+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EventModel
	err := tx.Preload("Club").
		Order("start_time ASC, id ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error
	return rows, total, err
}

// Get returns an event with its club and sub-events.
func (s *Service) Get(ctx context.Context, id uint) (*model.EventModel, error) {
	var ev model.EventModel
	err := s.DB.WithContext(ctx).
		Preload("Club").
		Preload("SubEvents", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC, id ASC") }).
		First(&ev, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Event not found")
		}
		return nil, err
	}
	return &ev, nil
}

func (s *Service) Mine(ctx context.Context, actor helper.Actor) ([]model.EventModel, error) {
	var rows []model.EventModel
	err := s.DB.WithContext(ctx).
		Where("organizer_id = ?", actor.ID).
		Order("start_time DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// Leaderboard returns the public standings, best first. Marks are hidden
// unless the event shows them.
func (s *Service) Leaderboard(ctx context.Context, eventID uint) (*dto.LeaderboardResponse, error) {
	ev, err := FindEvent(ctx, s.DB, eventID)
	if err != nil {
		return nil, err
	}

	var entries []boardModel.LeaderboardModel
	if err := s.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("marks DESC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var (
		teamIDs    []uint
		studentIDs []string
	)
	for i := range entries {
		c, err := entries[i].Competitor()
		if err != nil {
			continue
		}
		switch v := c.(type) {
		case boardModel.TeamCompetitor:
			teamIDs = append(teamIDs, v.TeamID)
		case boardModel.IndividualCompetitor:
			studentIDs = append(studentIDs, v.StudentID)
		}
	}

	names, err := s.competitorNames(ctx, teamIDs, studentIDs)
	if err != nil {
		return nil, err
	}

	out := &dto.LeaderboardResponse{EventID: ev.ID, ShowMarks: ev.ShowLeaderboardMarks, Entries: make([]dto.LeaderboardRow, 0, len(entries))}
	for _, e := range entries {
		row := dto.LeaderboardRow{
			CompetitorID:   e.CompetitorIDValue,
			CompetitorType: string(e.CompetitorTypeValue),
			Name:           names[string(e.CompetitorTypeValue)+":"+e.CompetitorIDValue],
			Rank:           e.Rank,
		}
		if ev.ShowLeaderboardMarks {
			marks := e.Marks
			row.Marks = &marks
		}
		out.Entries = append(out.Entries, row)
	}
	return out, nil
}

func (s *Service) competitorNames(ctx context.Context, teamIDs []uint, studentIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(teamIDs)+len(studentIDs))
	if len(teamIDs) > 0 {
		var teams []memberModel.TeamModel
		if err := s.DB.WithContext(ctx).Select("id", "team_name").Where("id IN ?", teamIDs).Find(&teams).Error; err != nil {
			return nil, err
		}
		for _, t := range teams {
			names[string(boardModel.CompetitorTeam)+":"+boardModel.TeamCompetitor{TeamID: t.ID}.CompetitorID()] = t.TeamName
		}
	}
	if len(studentIDs) > 0 {
		var students []academicModel.StudentModel
		if err := s.DB.WithContext(ctx).Select("student_id", "name").Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
			return nil, err
		}
		for _, st := range students {
			names[string(boardModel.CompetitorIndividual)+":"+st.StudentID] = st.Name
		}
	}
	return names, nil
}

/* ===================== writes ===================== */

// Create stores the uploads, then consumes one creation slot and inserts the
// event in a single transaction. Uploads are removed again if the
// transaction fails.
func (s *Service) Create(ctx context.Context, actor helper.Actor, in *dto.CreateEventRequest, banner *multipart.FileHeader, qrCodes []*multipart.FileHeader) (*model.EventModel, error) {
	ev, err := in.ToModel(actor.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleSubOrganizer && ev.ParentID == nil {
		return nil, helper.ErrForbidden("Sub-organizers can only create events inside their fest")
	}

	var uploaded []string
	cleanup := func() {
		for _, u := range uploaded {
			if err := s.Store.Delete(context.Background(), u); err != nil {
				log.Printf("[EVENTS] cleanup upload %s: %v", u, err)
			}
		}
	}

	if banner != nil {
		url, err := s.Store.Save(ctx, bannerFolder, banner)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, url)
		ev.BannerURL = &url
	}
	if len(qrCodes) > 0 {
		urls := make([]string, 0, len(qrCodes))
		for _, fh := range qrCodes {
			url, err := s.Store.Save(ctx, qrFolder, fh)
			if err != nil {
				cleanup()
				return nil, err
			}
			uploaded = append(uploaded, url)
			urls = append(urls, url)
		}
		raw, err := sonic.Marshal(urls)
		if err != nil {
			cleanup()
			return nil, err
		}
		ev.PaymentQRCodes = datatypes.JSON(raw)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ev.ParentID != nil {
			if err := checkParent(tx, actor, *ev.ParentID); err != nil {
				return err
			}
		}
		if ev.ClubID != nil {
			if err := checkClub(tx, *ev.ClubID); err != nil {
				return err
			}
		}
		if !actor.IsAdmin() {
			if err := consumeCreationSlot(tx, actor.ID); err != nil {
				return err
			}
		}
		return tx.Create(ev).Error
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	log.Printf("[EVENTS] created id=%d organizer=%d parent=%v", ev.ID, actor.ID, ev.ParentID)
	return ev, nil
}

// consumeCreationSlot decrements the organizer's remaining creation limit.
// The guard in the WHERE clause keeps the limit from going negative under
// concurrent creates.
func consumeCreationSlot(tx *gorm.DB, userID uint) error {
	res := tx.Model(&userModel.UserModel{}).
		Where("id = ? AND event_creation_limit > 0", userID).
		UpdateColumn("event_creation_limit", gorm.Expr("event_creation_limit - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrLimitReached("Event creation limit reached")
	}
	return nil
}

// checkParent allows attaching to a top-level fest owned by the actor, or one
// the actor was approved to join as a sub-organizer.
func checkParent(tx *gorm.DB, actor helper.Actor, parentID uint) error {
	var parent model.EventModel
	if err := tx.Select("id", "parent_id", "organizer_id").First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrValidation("Parent event not found")
		}
		return err
	}
	if parent.ParentID != nil {
		return helper.ErrValidation("Sub-events cannot be nested")
	}
	if actor.IsAdmin() || parent.OrganizerID == actor.ID {
		return nil
	}

	var approved int64
	err := tx.Model(&requestModel.EventRequestModel{}).
		Joins("JOIN users ON users.email = event_requests.requestor_email").
		Where("users.id = ? AND event_requests.parent_fest_id = ? AND event_requests.status = ?",
			actor.ID, parentID, constants.RequestStatusApproved).
		Count(&approved).Error
	if err != nil {
		return err
	}
	if approved == 0 {
		return helper.ErrForbidden("You are not an organizer of this fest")
	}
	return nil
}

func checkClub(tx *gorm.DB, clubID uint) error {
	var n int64
	if err := tx.Model(&clubModel.ClubModel{}).Where("id = ?", clubID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrValidation("Club not found")
	}
	return nil
}

// Update applies a partial edit. A new banner replaces the old one, which is
// removed only after the row is saved.
func (s *Service) Update(ctx context.Context, actor helper.Actor, id uint, in *dto.UpdateEventRequest, banner *multipart.FileHeader) (*model.EventModel, error) {
	ev, err := LoadManaged(ctx, s.DB, id, actor)
	if err != nil {
		return nil, err
	}
	changes, err := in.Changes(ev)
	if err != nil {
		return nil, err
	}
	if v, ok := changes["club_id"].(uint); ok {
		if err := checkClub(s.DB.WithContext(ctx), v); err != nil {
			return nil, err
		}
	}

	var newBanner string
	if banner != nil {
		newBanner, err = s.Store.Save(ctx, bannerFolder, banner)
		if err != nil {
			return nil, err
		}
		changes["banner_url"] = newBanner
	}
	if len(changes) == 0 {
		return ev, nil
	}

	// Updates writes the map back into ev, so keep the old URL by value.
	var oldBanner string
	if ev.BannerURL != nil {
		oldBanner = *ev.BannerURL
	}

	if err := s.DB.WithContext(ctx).Model(ev).Updates(changes).Error; err != nil {
		if newBanner != "" {
			_ = s.Store.Delete(context.Background(), newBanner)
		}
		return nil, err
	}
	if newBanner != "" && oldBanner != "" && oldBanner != newBanner {
		if err := s.Store.Delete(ctx, oldBanner); err != nil {
			log.Printf("[EVENTS] delete old banner %s: %v", oldBanner, err)
		}
	}

	if v, ok := changes["registration_locked"]; ok {
		log.Printf("[EVENTS] event=%d registration_locked=%v by=%d", id, v, actor.ID)
	}
	return FindEvent(ctx, s.DB, id)
}

// Delete removes the event. Teams, members, scores, requirements and
// sub-events go with it through the foreign keys. Registered members are
// told the event was canceled.
func (s *Service) Delete(ctx context.Context, actor helper.Actor, id uint) error {
	ev, err := LoadManaged(ctx, s.DB, id, actor)
	if err != nil {
		return err
	}

	recipients, err := memberEmails(s.DB.WithContext(ctx), id)
	if err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Delete(&model.EventModel{}, id).Error; err != nil {
		return err
	}
	log.Printf("[EVENTS] deleted id=%d by=%d notified=%d", id, actor.ID, len(recipients))

	msgs := make([]*mailer.Message, 0, len(recipients))
	for _, email := range recipients {
		msgs = append(msgs, mailer.EventCanceled(email, ev.Name))
	}
	s.Mailer.Dispatch(msgs...)

	if ev.BannerURL != nil {
		if err := s.Store.Delete(ctx, *ev.BannerURL); err != nil {
			log.Printf("[EVENTS] delete banner %s: %v", *ev.BannerURL, err)
		}
	}
	return nil
}

// memberEmails collects distinct addresses of everyone attached to the event
// or one of its sub-events.
func memberEmails(db *gorm.DB, eventID uint) ([]string, error) {
	var ids []uint
	if err := db.Model(&model.EventModel{}).
		Where("id = ? OR parent_id = ?", eventID, eventID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	var emails []string
	err := db.Raw(`
		SELECT s.email FROM event_members m
		JOIN students s ON s.student_id = m.member_id
		WHERE m.member_type = ? AND m.event_id IN ?
		UNION
		SELECT e.email FROM event_members m
		JOIN employees e ON e.employee_id = m.member_id
		WHERE m.member_type = ? AND m.event_id IN ?`,
		memberModel.MemberTypeStudent, ids, memberModel.MemberTypeEmployee, ids,
	).Scan(&emails).Error
	return emails, err
}
