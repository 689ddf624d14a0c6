package repository

import (
	"dramastream/internal/models"

	"gorm.io/gorm"
)

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

func (r *EpisodeRepository) ListBySeriesID(seriesID uint) ([]models.Episode, error) {
	var out []models.Episode
	err := r.db.Where("series_id = ?", seriesID).Order("episode_number").Find(&out).Error
	return out, err
}

func (r *EpisodeRepository) GetByID(id uint) (*models.Episode, error) {
	var e models.Episode
	err := r.db.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
