package service

import (
	"errors"
	"fmt"
)

// Expected business outcomes. Handlers map these to 4xx responses with
// structured detail; anything else is a storage fault and surfaces as 500.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyUnlocked      = errors.New("episode already unlocked")
	ErrPremiumIneligible    = errors.New("premium users cannot earn coins from ads")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrUnknownProduct       = errors.New("unknown product id")
	ErrUnknownPlatform      = errors.New("unknown platform")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// InsufficientCoinsError carries the shortfall so clients can prompt a
// top-up with the exact number of coins still needed.
type InsufficientCoinsError struct {
	Required int64
	Current  int64
}

func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("insufficient coins: need %d, have %d", e.Required, e.Current)
}

type DailyLimitError struct {
	Limit   int
	Watched int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily ad limit exceeded: %d/%d", e.Watched, e.Limit)
}

type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return "receipt verification failed: " + e.Reason
}
