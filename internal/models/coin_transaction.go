package models

import (
	"time"
)

// CoinTransaction is one immutable entry in a user's coin ledger. Rows are
// only ever appended; corrections are new offsetting entries. The chain
// invariant is BalanceAfter == BalanceBefore + Amount, and each entry's
// BalanceBefore equals the previous entry's BalanceAfter (0 for the first).
type CoinTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Amount        int64     `gorm:"not null" json:"amount"` // positive = credit, negative = debit
	Type          string    `gorm:"size:30;not null;index" json:"type"`
	Reason        string    `gorm:"size:255" json:"reason"`
	BalanceBefore int64     `gorm:"not null" json:"balance_before"`
	BalanceAfter  int64     `gorm:"not null" json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
