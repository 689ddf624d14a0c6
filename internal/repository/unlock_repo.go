package repository

import (
	"errors"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

// ErrGrantExists is returned when a grant for (user, episode) already exists.
// The unique index surfaces it even when two requests race past the
// application-level check.
var ErrGrantExists = errors.New("episode already unlocked")

type UnlockRepository struct {
	db *gorm.DB
}

func NewUnlockRepository(db *gorm.DB) *UnlockRepository {
	return &UnlockRepository{db: db}
}

func (r *UnlockRepository) IsUnlocked(userID, episodeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UnlockedEpisode{}).
		Where("user_id = ? AND episode_id = ?", userID, episodeID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a grant, mapping the duplicate-key violation to
// ErrGrantExists so callers can distinguish the race from a storage fault.
func (r *UnlockRepository) Create(grant *models.UnlockedEpisode) error {
	err := r.db.Create(grant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrGrantExists
	}
	return err
}

func (r *UnlockRepository) ListByUser(userID uint) ([]models.UnlockedEpisode, error) {
	var grants []models.UnlockedEpisode
	err := r.db.Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}
