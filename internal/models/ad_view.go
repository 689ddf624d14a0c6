package models

import (
	"time"
)

// AdView is the durable per-day rewarded-ad counter, keyed by user and UTC
// calendar date (YYYY-MM-DD). Stored rather than held in session memory so
// counts survive restarts; the day key makes the counter reset naturally at
// the UTC day boundary.
type AdView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_adview_user_day,unique" json:"user_id"`
	Day       string    `gorm:"size:10;not null;index:idx_adview_user_day,unique" json:"day"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AdView) TableName() string {
	return "ad_views"
}
