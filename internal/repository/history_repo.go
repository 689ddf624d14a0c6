package repository

import (
	"errors"
	"time"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) ListByUser(userID uint) ([]models.WatchHistory, error) {
	var out []models.WatchHistory
	err := r.db.Preload("Series").Preload("Episode").
		Where("user_id = ?", userID).
		Order("last_watched_at DESC").Find(&out).Error
	return out, err
}

// SaveProgress upserts the per-episode progress row.
func (r *HistoryRepository) SaveProgress(userID, seriesID, episodeID uint, progress float64) (*models.WatchHistory, error) {
	var h models.WatchHistory
	err := r.db.Where("user_id = ? AND episode_id = ?", userID, episodeID).First(&h).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h = models.WatchHistory{UserID: userID, SeriesID: seriesID, EpisodeID: episodeID, Progress: progress, LastWatchedAt: now}
		if err := r.db.Create(&h).Error; err != nil {
			return nil, err
		}
		return &h, nil
	}
	h.Progress = progress
	h.LastWatchedAt = now
	if err := r.db.Save(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}
