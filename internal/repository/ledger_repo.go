package repository

import (
	"errors"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

const (
	historyDefaultLimit = 50
	historyMaxLimit     = 100
)

// ErrInsufficientFunds is returned by Debit when the conditional balance
// update matches no row because the user cannot afford the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// LedgerRepository owns the append-only coin ledger and the cached balance on
// the user row. Credits go through Append unconditionally; debits go through
// Debit, which enforces sufficiency in the same statement that moves the
// balance.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append records one signed ledger entry and moves the cached balance, as a
// single database transaction. The balance move is a relative UPDATE rather
// than read-then-write, so two concurrent appends for the same user serialize
// on the row and the chain stays monotonic.
func (r *LedgerRepository) Append(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error) {
	var entry models.CoinTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var u models.User
		if err := tx.Select("coin_balance").First(&u, userID).Error; err != nil {
			return err
		}
		entry = models.CoinTransaction{
			UserID:        userID,
			Amount:        amount,
			Type:          txType,
			Reason:        reason,
			BalanceBefore: u.CoinBalance - amount,
			BalanceAfter:  u.CoinBalance,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Debit spends amount (positive) if and only if the balance covers it. The
// sufficiency check rides in the UPDATE's WHERE clause, so two concurrent
// debits can never both pass on a balance that covers only one of them.
func (r *LedgerRepository) Debit(userID uint, amount int64, txType, reason string) (*models.CoinTransaction, error) {
	var entry models.CoinTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND coin_balance >= ?", userID, amount).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrInsufficientFunds
		}
		var u models.User
		if err := tx.Select("coin_balance").First(&u, userID).Error; err != nil {
			return err
		}
		entry = models.CoinTransaction{
			UserID:        userID,
			Amount:        -amount,
			Type:          txType,
			Reason:        reason,
			BalanceBefore: u.CoinBalance + amount,
			BalanceAfter:  u.CoinBalance,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Balance returns the cached balance; 0 for a user with no transactions.
func (r *LedgerRepository) Balance(userID uint) (int64, error) {
	var u models.User
	if err := r.db.Select("coin_balance").First(&u, userID).Error; err != nil {
		return 0, err
	}
	return u.CoinBalance, nil
}

// History returns the user's ledger entries, most recent first.
func (r *LedgerRepository) History(userID uint, limit int) ([]models.CoinTransaction, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}
	var entries []models.CoinTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Recompute rebuilds the cached balance from the transaction sum. It is the
// reconciliation path for cache drift and is not part of any request flow.
func (r *LedgerRepository) Recompute(userID uint) (int64, error) {
	var sum int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		row := tx.Model(&models.CoinTransaction{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(amount), 0)")
		if err := row.Scan(&sum).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("coin_balance", sum).Error
	})
	return sum, err
}
