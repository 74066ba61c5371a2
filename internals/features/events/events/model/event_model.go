package model

import (
	"time"

	"gorm.io/datatypes"

	clubModel "campusvibe_backend/internals/features/clubs/model"
	userModel "campusvibe_backend/internals/features/users/user/model"

	"campusvibe_backend/internals/constants"
)

type EventMode string

const (
	EventModeOffline EventMode = "Offline"
	EventModeOnline  EventMode = "Online"
)

// EventModel is an organizer-owned event. A fest is an event with sub-events
// attached through ParentID; deleting the parent removes every sub-event.
type EventModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartTime   time.Time  `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime     *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	Venue       string     `gorm:"size:200;not null" json:"venue"`
	Mode        EventMode  `gorm:"size:20;not null;default:Offline" json:"mode"`
	BannerURL   *string    `gorm:"column:banner_url" json:"banner_url,omitempty"`

	ParentID  *uint        `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	SubEvents []EventModel `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"sub_events,omitempty"`

	ClubID *uint                `gorm:"column:club_id;index" json:"club_id,omitempty"`
	Club   *clubModel.ClubModel `gorm:"foreignKey:ClubID;constraint:OnDelete:SET NULL" json:"club,omitempty"`

	OrganizerID uint                 `gorm:"column:organizer_id;not null;index" json:"organizer_id"`
	Organizer   *userModel.UserModel `gorm:"foreignKey:OrganizerID" json:"-"`

	Contacts           datatypes.JSON `gorm:"column:contacts" json:"contacts,omitempty"`
	RegistrationSchema datatypes.JSON `gorm:"column:registration_schema" json:"registration_schema,omitempty"`
	PaymentQRCodes     datatypes.JSON `gorm:"column:payment_qr_codes" json:"payment_qr_codes,omitempty"`

	RegistrationType     string `gorm:"column:registration_type;size:20;not null;default:Individual" json:"registration_type"`
	IsPaidEvent          bool   `gorm:"column:is_paid_event;not null;default:false" json:"is_paid_event"`
	RegistrationFee      int64  `gorm:"column:registration_fee;not null;default:0" json:"registration_fee"`
	HasLeaderboard       bool   `gorm:"column:has_leaderboard;not null;default:false" json:"has_leaderboard"`
	ShowLeaderboardMarks bool   `gorm:"column:show_leaderboard_marks;not null;default:false" json:"show_leaderboard_marks"`
	RegistrationLocked   bool   `gorm:"column:registration_locked;not null;default:false" json:"registration_locked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string { return "events" }

// CanManage reports whether the caller may change or delete the event.
func (e *EventModel) CanManage(userID uint, role string) bool {
	return role == constants.RoleAdmin || e.OrganizerID == userID
}

func (e *EventModel) IsTeamEvent() bool {
	return e.RegistrationType == constants.RegistrationTeam
}

// InitialPaymentStatus is the status a fresh registration starts with.
func (e *EventModel) InitialPaymentStatus() string {
	if e.IsPaidEvent {
		return constants.PaymentPending
	}
	return constants.PaymentNotApplicable
}
