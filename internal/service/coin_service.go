package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dramastream/internal/domain"
	"dramastream/internal/economy"
	"dramastream/internal/models"

	"gorm.io/gorm"
)

// CoinService exposes the ledger operations that do not involve unlocking:
// balance, history, direct earns, and IAP coin-pack purchases.
type CoinService struct {
	ledger   LedgerStore
	users    UserStore
	verifier ReceiptVerifier
}

func NewCoinService(ledger LedgerStore, users UserStore, verifier ReceiptVerifier) *CoinService {
	return &CoinService{ledger: ledger, users: users, verifier: verifier}
}

type PurchaseResult struct {
	CoinsAdded int64
	NewBalance int64
}

func (s *CoinService) Balance(userID uint) (int64, error) {
	balance, err := s.ledger.Balance(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

func (s *CoinService) History(userID uint, limit int) ([]models.CoinTransaction, error) {
	return s.ledger.History(userID, limit)
}

// Earn credits coins for client-reported reward events (daily login, share
// bonus and the like). Amount must be a positive credit.
func (s *CoinService) Earn(userID uint, amount int64, reason string) (*models.CoinTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	entry, err := s.ledger.Append(userID, amount, domain.TxTypeEarn, reason)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return entry, err
}

// VerifyPurchase validates an IAP receipt and credits the matching coin
// pack. Unknown products are rejected before any store round-trip.
func (s *CoinService) VerifyPurchase(ctx context.Context, userID uint, platform, productID, token string) (*PurchaseResult, error) {
	coins, ok := economy.CoinPacks[productID]
	if !ok {
		return nil, ErrUnknownProduct
	}
	if platform != domain.PlatformAndroid && platform != domain.PlatformIOS {
		return nil, ErrUnknownPlatform
	}

	res := s.verifier.Verify(ctx, platform, productID, token)
	if !res.Valid {
		return nil, &VerificationError{Reason: res.Reason}
	}

	entry, err := s.ledger.Append(userID, coins, domain.TxTypePurchase,
		fmt.Sprintf("iap_purchase_%s_%s", productID, platform))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[Coins] purchase verified, %d coins added for user %d", coins, userID)
	return &PurchaseResult{CoinsAdded: coins, NewBalance: entry.BalanceAfter}, nil
}
