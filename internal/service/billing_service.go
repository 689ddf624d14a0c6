package service

import (
	"context"
	"errors"
	"log"
	"time"

	"dramastream/internal/domain"
	"dramastream/internal/economy"
	"dramastream/internal/models"
	"dramastream/pkg/receipt"

	"gorm.io/gorm"
)

// BillingService owns the subscription state machine:
// none -> active -> {expired, canceled}, with active -> active on renewal
// updating the same row. Expiry is lazy — applied on every read, never by a
// background sweep.
type BillingService struct {
	subs     SubscriptionStore
	users    UserStore
	verifier ReceiptVerifier
}

func NewBillingService(subs SubscriptionStore, users UserStore, verifier ReceiptVerifier) *BillingService {
	return &BillingService{subs: subs, users: users, verifier: verifier}
}

type BillingStatus struct {
	Subscribed   bool                 `json:"subscribed"`
	IsPremium    bool                 `json:"is_premium"`
	Subscription *models.Subscription `json:"subscription"`
}

// Activate verifies the store receipt and turns it into a premium grant. On
// verification failure nothing is mutated. The subscription upsert and the
// cached premium flag land in one store transaction, so a storage fault
// cannot leave an active row without the projection (or the reverse).
func (s *BillingService) Activate(ctx context.Context, userID uint, platform, productID, token string) (*models.Subscription, error) {
	if platform != domain.PlatformAndroid && platform != domain.PlatformIOS {
		return nil, ErrUnknownPlatform
	}
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	res := s.verifier.Verify(ctx, platform, productID, token)
	if !res.Valid {
		return nil, &VerificationError{Reason: res.Reason}
	}
	if res.Reason == receipt.ReasonSimulated {
		log.Printf("[Billing] SIMULATED verification accepted for user %d product %s", userID, productID)
	}

	plan := economy.PlanFromProduct(productID)
	now := time.Now()
	expiresAt := economy.PlanExpiry(plan, now)

	sub, err := s.subs.GetByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if sub == nil {
		sub = &models.Subscription{UserID: userID, PurchasedAt: now}
	}
	sub.Plan = plan
	sub.PurchaseToken = token
	sub.StoreProductID = productID
	sub.Status = domain.SubStatusActive
	sub.ExpiresAt = expiresAt
	sub.RenewsAt = &expiresAt
	sub.CancelledAt = nil

	if err := s.subs.Activate(sub); err != nil {
		return nil, err
	}
	log.Printf("[Billing] premium activated for user %d, plan %s, expires %s", userID, plan, expiresAt.Format(time.RFC3339))
	return sub, nil
}

// Status reports current entitlement. A stored active row whose expiry has
// passed is reported as expired — the stale status column is never trusted
// on its own.
func (s *BillingService) Status(userID uint) (*BillingStatus, error) {
	sub, err := s.subs.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &BillingStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if now.After(sub.ExpiresAt) {
		sub.Status = domain.SubStatusExpired
	}
	return &BillingStatus{
		Subscribed:   sub.Status == domain.SubStatusActive,
		IsPremium:    now.Before(sub.ExpiresAt),
		Subscription: sub,
	}, nil
}

// IsPremium is the derived entitlement check the unlock path consumes.
func (s *BillingService) IsPremium(userID uint) (bool, error) {
	st, err := s.Status(userID)
	if err != nil {
		return false, err
	}
	return st.IsPremium, nil
}

// Cancel stops renewal but leaves the current term intact: expiresAt is
// untouched and premium benefits run until natural expiry.
func (s *BillingService) Cancel(userID uint) error {
	sub, err := s.subs.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoActiveSubscription
	}
	if err != nil {
		return err
	}
	if sub.Status != domain.SubStatusActive || time.Now().After(sub.ExpiresAt) {
		return ErrNoActiveSubscription
	}
	now := time.Now()
	sub.Status = domain.SubStatusCanceled
	sub.CancelledAt = &now
	sub.RenewsAt = nil
	return s.subs.Save(sub)
}
