package repository

import (
	"errors"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var out []models.Favorite
	err := r.db.Preload("Series").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *FavoriteRepository) IsFavorite(userID, seriesID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND series_id = ?", userID, seriesID).Count(&count).Error
	return count > 0, err
}

// Toggle adds the favorite if absent, removes it if present, and reports the
// resulting state.
func (r *FavoriteRepository) Toggle(userID, seriesID uint) (bool, error) {
	var f models.Favorite
	err := r.db.Where("user_id = ? AND series_id = ?", userID, seriesID).First(&f).Error
	if err == nil {
		return false, r.db.Unscoped().Delete(&f).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, r.db.Create(&models.Favorite{UserID: userID, SeriesID: seriesID}).Error
}
