package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dramastream/internal/domain"
	"dramastream/internal/models"
	"dramastream/pkg/receipt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingFixture(t *testing.T, res receipt.Result) (*BillingService, *fakeUsers, *fakeSubs, *stubVerifier) {
	t.Helper()
	users := newFakeUsers(1)
	subs := newFakeSubs(users)
	verifier := &stubVerifier{result: res}
	return NewBillingService(subs, users, verifier), users, subs, verifier
}

func TestActivateGrantsPremium(t *testing.T) {
	svc, users, subs, _ := newBillingFixture(t, receipt.Result{Valid: true, Reason: receipt.ReasonSimulated})

	sub, err := svc.Activate(context.Background(), 1, domain.PlatformAndroid, "com.dramastream.premium.weekly", "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanWeekly, sub.Plan)
	assert.Equal(t, domain.SubStatusActive, sub.Status)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), sub.ExpiresAt, time.Minute)

	stored, err := subs.GetByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, stored.ID)
	assert.True(t, users.users[1].IsPremium)

	premium, err := svc.IsPremium(1)
	require.NoError(t, err)
	assert.True(t, premium)
}

func TestActivateRenewalUpdatesExistingRow(t *testing.T) {
	svc, _, subs, _ := newBillingFixture(t, receipt.Result{Valid: true})

	first, err := svc.Activate(context.Background(), 1, domain.PlatformIOS, "com.dramastream.premium.monthly", "tok1")
	require.NoError(t, err)
	second, err := svc.Activate(context.Background(), 1, domain.PlatformIOS, "com.dramastream.premium.yearly", "tok2")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.PlanYearly, second.Plan)
	stored, _ := subs.GetByUserID(1)
	assert.Equal(t, "tok2", stored.PurchaseToken)
}

func TestActivateVerificationFailureMutatesNothing(t *testing.T) {
	svc, users, subs, _ := newBillingFixture(t, receipt.Result{Valid: false, Reason: "purchase has been canceled"})

	_, err := svc.Activate(context.Background(), 1, domain.PlatformAndroid, "com.dramastream.premium.monthly", "tok")
	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "purchase has been canceled", verr.Reason)

	_, err = subs.GetByUserID(1)
	assert.Error(t, err)
	assert.False(t, users.users[1].IsPremium)
}

func TestActivateStorageFailureLeavesNoActiveRow(t *testing.T) {
	svc, users, subs, _ := newBillingFixture(t, receipt.Result{Valid: true})
	subs.activateErr = errors.New("disk full")

	_, err := svc.Activate(context.Background(), 1, domain.PlatformAndroid, "com.dramastream.premium.monthly", "tok")
	require.Error(t, err)

	// The upsert and the premium projection are one unit: neither landed.
	_, err = subs.GetByUserID(1)
	assert.Error(t, err)
	assert.False(t, users.users[1].IsPremium)
}

func TestActivateRejectsUnknownPlatform(t *testing.T) {
	svc, _, _, verifier := newBillingFixture(t, receipt.Result{Valid: true})
	_, err := svc.Activate(context.Background(), 1, "windows", "com.dramastream.premium.monthly", "tok")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Zero(t, verifier.calls)
}

func TestStatusAppliesLazyExpiry(t *testing.T) {
	svc, _, subs, _ := newBillingFixture(t, receipt.Result{Valid: true})

	past := time.Now().Add(-time.Hour)
	require.NoError(t, subs.Save(&models.Subscription{
		ID: 1, UserID: 1, Plan: domain.PlanMonthly, Status: domain.SubStatusActive, ExpiresAt: past,
	}))

	st, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, st.Subscribed)
	assert.False(t, st.IsPremium)
	assert.Equal(t, domain.SubStatusExpired, st.Subscription.Status)
}

func TestStatusWithoutSubscription(t *testing.T) {
	svc, _, _, _ := newBillingFixture(t, receipt.Result{Valid: true})
	st, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, st.Subscribed)
	assert.False(t, st.IsPremium)
	assert.Nil(t, st.Subscription)
}

func TestCancelKeepsCurrentTerm(t *testing.T) {
	svc, _, subs, _ := newBillingFixture(t, receipt.Result{Valid: true})

	_, err := svc.Activate(context.Background(), 1, domain.PlatformAndroid, "com.dramastream.premium.monthly", "tok")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(1))
	stored, _ := subs.GetByUserID(1)
	assert.Equal(t, domain.SubStatusCanceled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
	assert.Nil(t, stored.RenewsAt)
	assert.True(t, time.Now().Before(stored.ExpiresAt))

	// Entitlement runs until natural expiry.
	premium, err := svc.IsPremium(1)
	require.NoError(t, err)
	assert.True(t, premium)

	// A second cancel has nothing active to stop.
	assert.ErrorIs(t, svc.Cancel(1), ErrNoActiveSubscription)
}

func TestCancelWithoutSubscription(t *testing.T) {
	svc, _, _, _ := newBillingFixture(t, receipt.Result{Valid: true})
	assert.ErrorIs(t, svc.Cancel(1), ErrNoActiveSubscription)
}

func TestCancelExpiredSubscription(t *testing.T) {
	svc, _, subs, _ := newBillingFixture(t, receipt.Result{Valid: true})
	past := time.Now().Add(-time.Hour)
	require.NoError(t, subs.Save(&models.Subscription{
		ID: 1, UserID: 1, Plan: domain.PlanMonthly, Status: domain.SubStatusActive, ExpiresAt: past,
	}))
	assert.ErrorIs(t, svc.Cancel(1), ErrNoActiveSubscription)
}
