package repository

import (
	"errors"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

// ErrAdLimitReached is returned by Increment when the day's counter is
// already at the cap, so the claim never overshoots under concurrency.
var ErrAdLimitReached = errors.New("daily ad limit reached")

type AdViewRepository struct {
	db *gorm.DB
}

func NewAdViewRepository(db *gorm.DB) *AdViewRepository {
	return &AdViewRepository{db: db}
}

// CountForDay returns how many rewarded ads the user has watched on the
// given UTC day (YYYY-MM-DD). Missing row means zero.
func (r *AdViewRepository) CountForDay(userID uint, day string) (int, error) {
	var v models.AdView
	err := r.db.Where("user_id = ? AND day = ?", userID, day).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v.Count, nil
}

// Increment claims one view against the day's cap and returns the new count.
// The cap check rides in the UPDATE's WHERE clause (count < max), so two
// concurrent claims on the last slot cannot both succeed. The first view of a
// day inserts the row; a concurrent first view loses the unique-index race
// and falls back to the conditional update.
func (r *AdViewRepository) Increment(userID uint, day string, max int) (int, error) {
	var count int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AdView{}).
			Where("user_id = ? AND day = ? AND count < ?", userID, day, max).
			UpdateColumn("count", gorm.Expr("count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			err := tx.Create(&models.AdView{UserID: userID, Day: day, Count: 1}).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Row exists after all: either a raced first view or a
				// counter already at the cap.
				res = tx.Model(&models.AdView{}).
					Where("user_id = ? AND day = ? AND count < ?", userID, day, max).
					UpdateColumn("count", gorm.Expr("count + 1"))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrAdLimitReached
				}
			} else if err != nil {
				return err
			}
		}
		var v models.AdView
		if err := tx.Where("user_id = ? AND day = ?", userID, day).First(&v).Error; err != nil {
			return err
		}
		count = v.Count
		return nil
	})
	return count, err
}

// Release gives back one claimed view. It is the compensation path for a
// reward credit that failed after the claim succeeded.
func (r *AdViewRepository) Release(userID uint, day string) error {
	return r.db.Model(&models.AdView{}).
		Where("user_id = ? AND day = ? AND count > 0", userID, day).
		UpdateColumn("count", gorm.Expr("count - 1")).Error
}
