package models

import (
	"time"
)

type WatchHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_history_user_episode,unique" json:"user_id"`
	SeriesID      uint      `gorm:"not null;index" json:"series_id"`
	EpisodeID     uint      `gorm:"not null;index:idx_history_user_episode,unique" json:"episode_id"`
	Progress      float64   `gorm:"default:0" json:"progress"` // 0..1
	LastWatchedAt time.Time `json:"last_watched_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Series  Series  `gorm:"foreignKey:SeriesID" json:"series"`
	Episode Episode `gorm:"foreignKey:EpisodeID" json:"episode"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
