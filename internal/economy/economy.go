// Package economy holds the coin-economy constants and the pure decision
// functions that gate unlocks and ad rewards. Nothing here touches storage,
// so every rule is unit-testable in isolation.
package economy

import (
	"strings"
	"time"

	"dramastream/internal/domain"
)

const (
	CoinsPerVideo      = 2
	CoinsPerAd         = 3
	MaxAdsPerDay       = 10
	DailyLoginBonus    = 2
	WatchStreakBonus   = 5
	ReferralBonus      = 25
	ShareEpisodeReward = 5
)

// CanUnlock reports whether a user may unlock an episode. Premium users
// always can, regardless of balance.
func CanUnlock(balance int64, isPremium bool) bool {
	if isPremium {
		return true
	}
	return balance >= CoinsPerVideo
}

// UnlockCost returns the coins to deduct for an episode unlock.
func UnlockCost(isPremium bool) int64 {
	if isPremium {
		return 0
	}
	return CoinsPerVideo
}

// AdLimitExceeded reports whether the user has hit today's rewarded-ad cap.
func AdLimitExceeded(adsWatchedToday int) bool {
	return adsWatchedToday >= MaxAdsPerDay
}

// AdReward returns the coins granted for one rewarded ad view.
func AdReward() int64 {
	return CoinsPerAd
}

// MonthlyFreeVideos approximates how many episodes a free user can unlock
// per month purely from ad rewards.
func MonthlyFreeVideos() int {
	dailyFreeCoins := MaxAdsPerDay * CoinsPerAd
	return (dailyFreeCoins / CoinsPerVideo) * 30
}

// CoinPacks maps IAP product IDs to the coins credited on a verified
// purchase. Larger packs include a bonus.
var CoinPacks = map[string]int64{
	"com.dramastream.coins.100":  100,
	"com.dramastream.coins.500":  550,
	"com.dramastream.coins.1200": 1400,
	"com.dramastream.coins.2500": 3000,
}

// PlanExpiry returns the expiry for a subscription bought now. Monthly and
// yearly use calendar arithmetic, not fixed day counts.
func PlanExpiry(plan string, now time.Time) time.Time {
	switch plan {
	case domain.PlanWeekly:
		return now.AddDate(0, 0, 7)
	case domain.PlanYearly:
		return now.AddDate(1, 0, 0)
	default:
		return now.AddDate(0, 1, 0)
	}
}

// PlanFromProduct derives the subscription plan from a store product ID.
// Unrecognized products default to monthly, matching the store listing.
func PlanFromProduct(productID string) string {
	switch {
	case strings.Contains(productID, domain.PlanWeekly):
		return domain.PlanWeekly
	case strings.Contains(productID, domain.PlanYearly):
		return domain.PlanYearly
	default:
		return domain.PlanMonthly
	}
}
