package models

import (
	"time"

	"gorm.io/gorm"
)

type Favorite struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_fav_user_series,unique" json:"user_id"`
	SeriesID  uint           `gorm:"not null;index:idx_fav_user_series,unique" json:"series_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Series Series `gorm:"foreignKey:SeriesID" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
