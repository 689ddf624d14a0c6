package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"dramastream/internal/domain"
	"dramastream/internal/economy"
	"dramastream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnlockFixture(t *testing.T, premium bool) (*UnlockService, *fakeUsers, *fakeLedger, *fakeUnlocks, *fakeAdViews) {
	t.Helper()
	users := newFakeUsers(1)
	ledger := &fakeLedger{users: users}
	unlocks := newFakeUnlocks()
	adViews := newFakeAdViews()
	svc := NewUnlockService(users, ledger, unlocks, adViews, stubPremium{premium: premium})
	return svc, users, ledger, unlocks, adViews
}

func TestUnlockDeductsCoinsAndIsIdempotent(t *testing.T) {
	svc, _, ledger, _, _ := newUnlockFixture(t, false)

	_, err := ledger.Append(1, 5, domain.TxTypeEarn, "daily_login")
	require.NoError(t, err)

	res, err := svc.Unlock(1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.CoinsDeducted)
	assert.Equal(t, int64(3), res.NewBalance)
	assert.Equal(t, domain.UnlockMethodCoins, res.Grant.UnlockMethod)

	// Ledger chain: each entry starts where the previous one ended.
	require.Len(t, ledger.entries, 2)
	debit := ledger.entries[1]
	assert.Equal(t, int64(-2), debit.Amount)
	assert.Equal(t, int64(5), debit.BalanceBefore)
	assert.Equal(t, int64(3), debit.BalanceAfter)
	assert.Equal(t, debit.BalanceBefore, ledger.entries[0].BalanceAfter)

	// Second unlock of the same episode is rejected and costs nothing.
	_, err = svc.Unlock(1, 42)
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	balance, _ := ledger.Balance(1)
	assert.Equal(t, int64(3), balance)
}

func TestUnlockInsufficientCoinsIsNoOp(t *testing.T) {
	svc, _, ledger, unlocks, _ := newUnlockFixture(t, false)

	_, err := ledger.Append(1, 1, domain.TxTypeEarn, "daily_login")
	require.NoError(t, err)

	_, err = svc.Unlock(1, 42)
	var insufficient *InsufficientCoinsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(2), insufficient.Required)
	assert.Equal(t, int64(1), insufficient.Current)

	// No debit, no grant.
	assert.Len(t, ledger.entries, 1)
	unlocked, _ := unlocks.IsUnlocked(1, 42)
	assert.False(t, unlocked)
}

func TestUnlockPremiumBypassesLedger(t *testing.T) {
	svc, _, ledger, _, _ := newUnlockFixture(t, true)

	res, err := svc.Unlock(1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.UnlockMethodPremium, res.Grant.UnlockMethod)
	assert.Zero(t, res.CoinsDeducted)
	assert.Empty(t, ledger.entries)

	unlocked, err := svc.IsUnlocked(1, 42)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestUnlockUnknownUser(t *testing.T) {
	svc, _, _, _, _ := newUnlockFixture(t, false)
	_, err := svc.Unlock(99, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnlockCompensatesLostGrantRace(t *testing.T) {
	svc, _, ledger, unlocks, _ := newUnlockFixture(t, false)

	_, err := ledger.Append(1, 10, domain.TxTypeEarn, "daily_login")
	require.NoError(t, err)
	unlocks.createErr = repository.ErrGrantExists

	_, err = svc.Unlock(1, 42)
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)

	// The debit is offset with a credit; net balance is unchanged and both
	// legs remain in the ledger.
	balance, _ := ledger.Balance(1)
	assert.Equal(t, int64(10), balance)
	require.Len(t, ledger.entries, 3)
	assert.Equal(t, int64(-2), ledger.entries[1].Amount)
	assert.Equal(t, int64(2), ledger.entries[2].Amount)
}

func TestWatchAdCreditsReward(t *testing.T) {
	svc, _, ledger, _, _ := newUnlockFixture(t, false)

	res, err := svc.WatchAd(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.CoinsEarned)
	assert.Equal(t, int64(3), res.NewBalance)
	assert.Equal(t, 1, res.AdsWatchedToday)
	assert.Equal(t, economy.MaxAdsPerDay, res.MaxAdsPerDay)

	require.Len(t, ledger.entries, 1)
	assert.Equal(t, domain.TxTypeAdReward, ledger.entries[0].Type)
}

func TestWatchAdDailyLimitBoundary(t *testing.T) {
	svc, _, _, _, adViews := newUnlockFixture(t, false)
	day := time.Now().UTC().Format("2006-01-02")

	// The tenth view of the day is still allowed.
	adViews.counts[adViewKey{1, day}] = economy.MaxAdsPerDay - 1
	res, err := svc.WatchAd(1)
	require.NoError(t, err)
	assert.Equal(t, economy.MaxAdsPerDay, res.AdsWatchedToday)

	// The eleventh is not.
	_, err = svc.WatchAd(1)
	var limit *DailyLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, economy.MaxAdsPerDay, limit.Limit)
	assert.Equal(t, economy.MaxAdsPerDay, limit.Watched)
}

func TestWatchAdPremiumIneligible(t *testing.T) {
	svc, _, ledger, _, _ := newUnlockFixture(t, true)
	_, err := svc.WatchAd(1)
	assert.ErrorIs(t, err, ErrPremiumIneligible)
	assert.Empty(t, ledger.entries)
}

func TestWatchAdReleasesClaimWhenCreditFails(t *testing.T) {
	svc, _, ledger, _, adViews := newUnlockFixture(t, false)
	ledger.failAppend = errors.New("disk full")

	_, err := svc.WatchAd(1)
	require.Error(t, err)

	// The claimed view is given back; the user is not down a slot with no
	// reward, and nothing hit the ledger.
	day := time.Now().UTC().Format("2006-01-02")
	count, _ := adViews.CountForDay(1, day)
	assert.Zero(t, count)
	assert.Empty(t, ledger.entries)
}

func TestConcurrentUnlocksCannotOverspend(t *testing.T) {
	svc, _, ledger, _, _ := newUnlockFixture(t, false)

	// Balance covers exactly one unlock; two different episodes race for it.
	_, err := ledger.Append(1, 2, domain.TxTypeEarn, "daily_login")
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, episodeID := range []uint{100, 200} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.Unlock(1, id)
			errs <- err
		}(episodeID)
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var ie *InsufficientCoinsError
		require.ErrorAs(t, err, &ie)
		insufficient++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	balance, err := ledger.Balance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestConcurrentAdViewsCannotExceedLimit(t *testing.T) {
	svc, _, ledger, _, adViews := newUnlockFixture(t, false)
	day := time.Now().UTC().Format("2006-01-02")
	adViews.counts[adViewKey{1, day}] = economy.MaxAdsPerDay - 1

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.WatchAd(1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, limited int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var le *DailyLimitError
		require.ErrorAs(t, err, &le)
		limited++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, limited)

	// The counter stops at the cap and only one reward was banked.
	count, _ := adViews.CountForDay(1, day)
	assert.Equal(t, economy.MaxAdsPerDay, count)
	assert.Len(t, ledger.entries, 1)
}
