package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            *string        `gorm:"uniqueIndex;size:255" json:"email"` // nil for guests (avoids duplicate '' on unique index)
	PasswordHash     string         `gorm:"size:255" json:"-"`
	DisplayName      string         `gorm:"size:128;not null;default:'Guest'" json:"display_name"`
	AvatarURL        string         `gorm:"size:512" json:"avatar_url"`
	AuthProvider     string         `gorm:"size:20;not null;default:'local'" json:"auth_provider"`
	Language         string         `gorm:"size:8;default:'en'" json:"language"`
	IsPremium        bool           `gorm:"default:false" json:"is_premium"`
	PremiumExpiresAt *time.Time     `json:"premium_expires_at"`
	CoinBalance      int64          `gorm:"not null;default:0" json:"coin_balance"` // cached; source of truth is coin_transactions
	DataPreferences  string         `gorm:"type:text" json:"data_preferences"`
	EmailVerified    bool           `gorm:"default:false" json:"email_verified"`
	LastLoginAt      *time.Time     `json:"last_login_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
