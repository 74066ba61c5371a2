package model

import "time"

type ClubModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClubName    string    `gorm:"column:club_name;size:150;uniqueIndex;not null" json:"club_name"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     *string   `gorm:"column:logo_url" json:"logo_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClubModel) TableName() string { return "clubs" }
