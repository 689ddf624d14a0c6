package models

import "time"

type Genre struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	IconName   string    `gorm:"size:64;default:'film'" json:"icon_name"`
	ColorStart string    `gorm:"size:16;default:'#E50914'" json:"color_start"`
	ColorEnd   string    `gorm:"size:16;default:'#B20710'" json:"color_end"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Genre) TableName() string {
	return "genres"
}
