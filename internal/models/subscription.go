package models

import (
	"time"
)

// Subscription holds the single logically-current premium row per user;
// renewals update it in place rather than inserting duplicates. status=active
// alone does not imply entitlement — entitlement also requires now < ExpiresAt
// (lazy expiry, applied on every read).
type Subscription struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Plan           string     `gorm:"size:20;not null" json:"plan"`
	PurchaseToken  string     `gorm:"size:512" json:"purchase_token"`
	StoreProductID string     `gorm:"size:128" json:"store_product_id"`
	Status         string     `gorm:"size:20;not null;index" json:"status"`
	ExpiresAt      time.Time  `gorm:"not null" json:"expires_at"`
	RenewsAt       *time.Time `json:"renews_at"`
	PurchasedAt    time.Time  `gorm:"autoCreateTime" json:"purchased_at"`
	CancelledAt    *time.Time `json:"cancelled_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
