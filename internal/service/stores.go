package service

import (
	"context"

	"dramastream/internal/models"
	"dramastream/pkg/receipt"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them in production; tests substitute in-memory fakes.

type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

// LedgerStore separates credits from debits: Append is unconditional, Debit
// enforces sufficiency atomically with the balance move.
type LedgerStore interface {
	Append(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error)
	Debit(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error)
	Balance(userID uint) (int64, error)
	History(userID uint, limit int) ([]models.CoinTransaction, error)
}

type UnlockStore interface {
	IsUnlocked(userID, episodeID uint) (bool, error)
	Create(grant *models.UnlockedEpisode) error
	ListByUser(userID uint) ([]models.UnlockedEpisode, error)
}

// AdViewStore claims rewarded-ad views against the daily cap. Increment is
// the atomic claim; Release is its compensation.
type AdViewStore interface {
	CountForDay(userID uint, day string) (int, error)
	Increment(userID uint, day string, max int) (int, error)
	Release(userID uint, day string) error
}

type SubscriptionStore interface {
	GetByUserID(userID uint) (*models.Subscription, error)
	Activate(s *models.Subscription) error
	Save(s *models.Subscription) error
}

// ReceiptVerifier is the pluggable purchase-verification boundary.
type ReceiptVerifier interface {
	Verify(ctx context.Context, platform, productID, token string) receipt.Result
}

// PremiumChecker reports live premium entitlement. It is backed by the
// billing service's lazy-expiry status check, never by the cached user flag.
type PremiumChecker interface {
	IsPremium(userID uint) (bool, error)
}
