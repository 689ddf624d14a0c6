package models

import (
	"time"

	"gorm.io/gorm"
)

type Series struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Title               string         `gorm:"size:255;not null" json:"title"`
	Description         string         `gorm:"type:text;not null" json:"description"`
	CoverImageURL       string         `gorm:"size:512" json:"cover_image_url"`
	PosterImageURL      string         `gorm:"size:512" json:"poster_image_url"`
	HeroPreviewVideoURL string         `gorm:"size:512" json:"hero_preview_video_url"`
	Genres              string         `gorm:"type:text;default:'[]'" json:"genres"` // JSON array of genre names
	TotalEpisodes       int            `gorm:"default:0" json:"total_episodes"`
	FreeEpisodes        int            `gorm:"default:3" json:"free_episodes"`
	ReleaseYear         int            `gorm:"default:2025" json:"release_year"`
	Rating              float64        `gorm:"default:4.5" json:"rating"`
	IsTrending          bool           `gorm:"default:false;index" json:"is_trending"`
	IsNew               bool           `gorm:"default:false;index" json:"is_new"`
	IsFeatured          bool           `gorm:"default:false;index" json:"is_featured"`
	ViewCount           int64          `gorm:"default:0" json:"view_count"`
	CreatedAt           time.Time      `json:"created_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Series) TableName() string {
	return "series"
}
