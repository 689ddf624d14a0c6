package models

import (
	"time"

	"gorm.io/gorm"
)

type Episode struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SeriesID      uint           `gorm:"not null;index" json:"series_id"`
	EpisodeNumber int            `gorm:"not null" json:"episode_number"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	ThumbnailURL  string         `gorm:"size:512" json:"thumbnail_url"`
	VideoURL      string         `gorm:"size:512;not null" json:"video_url"`
	Duration      int            `gorm:"default:90" json:"duration"` // seconds
	IsLocked      bool           `gorm:"default:true" json:"is_locked"`
	UnlockType    string         `gorm:"size:20;default:'free'" json:"unlock_type"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Series Series `gorm:"foreignKey:SeriesID" json:"-"`
}

func (Episode) TableName() string {
	return "episodes"
}
