package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dramastream/internal/domain"
	"dramastream/internal/economy"
	"dramastream/internal/models"
	"dramastream/internal/repository"

	"gorm.io/gorm"
)

// UnlockService is the single path for granting episode access. Premium users
// bypass the ledger entirely; free users pay the fixed unlock cost. The
// (user, episode) unique index backs the idempotency guard, and a debit whose
// grant loses that race is compensated with an offsetting credit.
type UnlockService struct {
	users   UserStore
	ledger  LedgerStore
	unlocks UnlockStore
	adViews AdViewStore
	premium PremiumChecker
}

func NewUnlockService(users UserStore, ledger LedgerStore, unlocks UnlockStore, adViews AdViewStore, premium PremiumChecker) *UnlockService {
	return &UnlockService{users: users, ledger: ledger, unlocks: unlocks, adViews: adViews, premium: premium}
}

type UnlockResult struct {
	Grant         *models.UnlockedEpisode
	CoinsDeducted int64
	NewBalance    int64
}

type AdRewardResult struct {
	CoinsEarned     int64
	NewBalance      int64
	AdsWatchedToday int
	MaxAdsPerDay    int
}

func (s *UnlockService) Unlock(userID, episodeID uint) (*UnlockResult, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	unlocked, err := s.unlocks.IsUnlocked(userID, episodeID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return nil, ErrAlreadyUnlocked
	}

	isPremium, err := s.premium.IsPremium(userID)
	if err != nil {
		return nil, err
	}
	if isPremium {
		grant := &models.UnlockedEpisode{UserID: userID, EpisodeID: episodeID, UnlockMethod: domain.UnlockMethodPremium}
		if err := s.unlocks.Create(grant); err != nil {
			if errors.Is(err, repository.ErrGrantExists) {
				return nil, ErrAlreadyUnlocked
			}
			return nil, err
		}
		balance, err := s.ledger.Balance(userID)
		if err != nil {
			return nil, err
		}
		return &UnlockResult{Grant: grant, NewBalance: balance}, nil
	}

	// The sufficiency check and the debit are one conditional store
	// operation; two concurrent unlocks can never both spend the same coins.
	cost := economy.UnlockCost(false)
	entry, err := s.ledger.Debit(userID, cost, domain.TxTypeEpisodeUnlock,
		fmt.Sprintf("Unlocked episode for %d coins", cost))
	if errors.Is(err, repository.ErrInsufficientFunds) {
		balance, berr := s.ledger.Balance(userID)
		if berr != nil {
			return nil, berr
		}
		return nil, &InsufficientCoinsError{Required: cost, Current: balance}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	grant := &models.UnlockedEpisode{UserID: userID, EpisodeID: episodeID, UnlockMethod: domain.UnlockMethodCoins}
	if err := s.unlocks.Create(grant); err != nil {
		// The user must never pay without receiving the grant: put the
		// coins back with an offsetting credit before reporting.
		if _, crErr := s.ledger.Append(userID, cost, domain.TxTypeEarn, "episode unlock reverted"); crErr != nil {
			log.Printf("[Unlock] compensation failed for user %d episode %d: %v", userID, episodeID, crErr)
			return nil, crErr
		}
		if errors.Is(err, repository.ErrGrantExists) {
			return nil, ErrAlreadyUnlocked
		}
		return nil, err
	}

	return &UnlockResult{Grant: grant, CoinsDeducted: cost, NewBalance: entry.BalanceAfter}, nil
}

// WatchAd claims one view against the durable per-day counter, then credits
// the rewarded-ad bonus. The claim carries the cap check, so concurrent
// views at the limit cannot bank an extra reward. Days are UTC calendar
// dates, so the counter resets naturally at the UTC day boundary.
func (s *UnlockService) WatchAd(userID uint) (*AdRewardResult, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isPremium, err := s.premium.IsPremium(userID)
	if err != nil {
		return nil, err
	}
	if isPremium {
		return nil, ErrPremiumIneligible
	}

	day := time.Now().UTC().Format("2006-01-02")
	watched, err := s.adViews.CountForDay(userID, day)
	if err != nil {
		return nil, err
	}
	if economy.AdLimitExceeded(watched) {
		return nil, &DailyLimitError{Limit: economy.MaxAdsPerDay, Watched: watched}
	}

	// The claim is the authoritative gate: its cap check is atomic with the
	// counter bump, so a race past the read above still cannot overshoot.
	count, err := s.adViews.Increment(userID, day, economy.MaxAdsPerDay)
	if errors.Is(err, repository.ErrAdLimitReached) {
		return nil, &DailyLimitError{Limit: economy.MaxAdsPerDay, Watched: economy.MaxAdsPerDay}
	}
	if err != nil {
		return nil, err
	}

	reward := economy.AdReward()
	entry, err := s.ledger.Append(userID, reward, domain.TxTypeAdReward,
		fmt.Sprintf("Watched advertisement (%d/%d)", count, economy.MaxAdsPerDay))
	if err != nil {
		// The claim succeeded but the credit did not: give the view back so
		// the user is not down a slot with no reward.
		if rlErr := s.adViews.Release(userID, day); rlErr != nil {
			log.Printf("[Unlock] ad view release failed for user %d: %v", userID, rlErr)
		}
		return nil, err
	}

	return &AdRewardResult{
		CoinsEarned:     reward,
		NewBalance:      entry.BalanceAfter,
		AdsWatchedToday: count,
		MaxAdsPerDay:    economy.MaxAdsPerDay,
	}, nil
}

// Unlocked lists the user's grants.
func (s *UnlockService) Unlocked(userID uint) ([]models.UnlockedEpisode, error) {
	return s.unlocks.ListByUser(userID)
}

// IsUnlocked checks a single grant.
func (s *UnlockService) IsUnlocked(userID, episodeID uint) (bool, error) {
	return s.unlocks.IsUnlocked(userID, episodeID)
}
