package repository

import (
	"dramastream/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByUserID(userID uint) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the subscription row back (renewals update in place — there is
// at most one row per user).
func (r *SubscriptionRepository) Save(s *models.Subscription) error {
	return r.db.Save(s).Error
}

// Activate upserts the subscription row and projects the premium flag onto
// the user inside one transaction: a failure on either write leaves neither
// behind.
func (r *SubscriptionRepository) Activate(s *models.Subscription) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if s.ID == 0 {
			err = tx.Create(s).Error
		} else {
			err = tx.Save(s).Error
		}
		if err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", s.UserID).
			Updates(map[string]interface{}{"is_premium": true, "premium_expires_at": s.ExpiresAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
