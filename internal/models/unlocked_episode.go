package models

import (
	"time"
)

// UnlockedEpisode is a permanent grant of access to one episode. The unique
// index on (user_id, episode_id) is the backstop against double-unlock under
// concurrent requests; grants are never updated or deleted, even if premium
// later lapses.
type UnlockedEpisode struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_unlock_user_episode,unique" json:"user_id"`
	EpisodeID    uint      `gorm:"not null;index:idx_unlock_user_episode,unique" json:"episode_id"`
	UnlockMethod string    `gorm:"size:20;not null;default:'free'" json:"unlock_method"`
	UnlockedAt   time.Time `gorm:"autoCreateTime" json:"unlocked_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Episode Episode `gorm:"foreignKey:EpisodeID" json:"-"`
}

func (UnlockedEpisode) TableName() string {
	return "unlocked_episodes"
}
