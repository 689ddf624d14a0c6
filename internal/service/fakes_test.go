package service

import (
	"context"
	"sync"
	"time"

	"dramastream/internal/models"
	"dramastream/internal/repository"
	"dramastream/pkg/receipt"

	"gorm.io/gorm"
)

// In-memory fakes for the store interfaces. They reproduce the behavior the
// gorm repositories guarantee: ledger appends carry the balance chain,
// debits and ad-view claims are conditional and atomic, grant creation is
// unique per (user, episode), and missing users surface as
// gorm.ErrRecordNotFound.

type fakeUsers struct {
	users map[uint]*models.User
}

func newFakeUsers(ids ...uint) *fakeUsers {
	f := &fakeUsers{users: make(map[uint]*models.User)}
	for _, id := range ids {
		f.users[id] = &models.User{ID: id}
	}
	return f
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeLedger struct {
	mu         sync.Mutex
	users      *fakeUsers
	entries    []models.CoinTransaction
	failAppend error
}

func (f *fakeLedger) Append(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend != nil {
		return nil, f.failAppend
	}
	return f.append(userID, amount, txType, reason)
}

// Debit mirrors the repository's conditional update: the sufficiency check
// and the balance move happen under one lock.
func (f *fakeLedger) Debit(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if u.CoinBalance < amount {
		return nil, repository.ErrInsufficientFunds
	}
	return f.append(userID, -amount, txType, reason)
}

func (f *fakeLedger) append(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error) {
	u, ok := f.users.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	entry := models.CoinTransaction{
		ID:            uint(len(f.entries) + 1),
		UserID:        userID,
		Amount:        amount,
		Type:          txType,
		Reason:        reason,
		BalanceBefore: u.CoinBalance,
		BalanceAfter:  u.CoinBalance + amount,
		CreatedAt:     time.Now(),
	}
	u.CoinBalance = entry.BalanceAfter
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeLedger) Balance(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return u.CoinBalance, nil
}

func (f *fakeLedger) History(userID uint, limit int) ([]models.CoinTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CoinTransaction
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type grantKey struct {
	userID    uint
	episodeID uint
}

type fakeUnlocks struct {
	grants    map[grantKey]*models.UnlockedEpisode
	createErr error // injected failure for the grant race
}

func newFakeUnlocks() *fakeUnlocks {
	return &fakeUnlocks{grants: make(map[grantKey]*models.UnlockedEpisode)}
}

func (f *fakeUnlocks) IsUnlocked(userID, episodeID uint) (bool, error) {
	_, ok := f.grants[grantKey{userID, episodeID}]
	return ok, nil
}

func (f *fakeUnlocks) Create(grant *models.UnlockedEpisode) error {
	if f.createErr != nil {
		return f.createErr
	}
	k := grantKey{grant.UserID, grant.EpisodeID}
	if _, ok := f.grants[k]; ok {
		return repository.ErrGrantExists
	}
	grant.UnlockedAt = time.Now()
	f.grants[k] = grant
	return nil
}

func (f *fakeUnlocks) ListByUser(userID uint) ([]models.UnlockedEpisode, error) {
	var out []models.UnlockedEpisode
	for k, g := range f.grants {
		if k.userID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type adViewKey struct {
	userID uint
	day    string
}

type fakeAdViews struct {
	mu     sync.Mutex
	counts map[adViewKey]int
}

func newFakeAdViews() *fakeAdViews {
	return &fakeAdViews{counts: make(map[adViewKey]int)}
}

func (f *fakeAdViews) CountForDay(userID uint, day string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[adViewKey{userID, day}], nil
}

// Increment is a conditional claim like the repository's: the cap check and
// the bump happen under one lock.
func (f *fakeAdViews) Increment(userID uint, day string, max int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := adViewKey{userID, day}
	if f.counts[k] >= max {
		return 0, repository.ErrAdLimitReached
	}
	f.counts[k]++
	return f.counts[k], nil
}

func (f *fakeAdViews) Release(userID uint, day string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := adViewKey{userID, day}
	if f.counts[k] > 0 {
		f.counts[k]--
	}
	return nil
}

type fakeSubs struct {
	users       *fakeUsers
	subs        map[uint]*models.Subscription
	nextID      uint
	activateErr error
}

func newFakeSubs(users *fakeUsers) *fakeSubs {
	return &fakeSubs{users: users, subs: make(map[uint]*models.Subscription)}
}

func (f *fakeSubs) GetByUserID(userID uint) (*models.Subscription, error) {
	s, ok := f.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

// Activate is all-or-nothing like the repository transaction: on failure
// neither the row nor the premium projection lands.
func (f *fakeSubs) Activate(s *models.Subscription) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	u, ok := f.users.users[s.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if s.ID == 0 {
		f.nextID++
		s.ID = f.nextID
	}
	cp := *s
	f.subs[s.UserID] = &cp
	u.IsPremium = true
	expires := s.ExpiresAt
	u.PremiumExpiresAt = &expires
	return nil
}

func (f *fakeSubs) Save(s *models.Subscription) error {
	cp := *s
	f.subs[s.UserID] = &cp
	return nil
}

type stubPremium struct {
	premium bool
	err     error
}

func (s stubPremium) IsPremium(userID uint) (bool, error) {
	return s.premium, s.err
}

type stubVerifier struct {
	result receipt.Result
	calls  int
}

func (s *stubVerifier) Verify(ctx context.Context, platform, productID, token string) receipt.Result {
	s.calls++
	return s.result
}
