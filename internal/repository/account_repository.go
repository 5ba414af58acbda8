package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"minibank/internal/model"
)

var (
	// ErrInsufficientFunds is returned when a debit would take the amount below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAmountOutOfRange is returned when a credit would exceed model.MaxAmount.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByUserID(ctx context.Context, userID uint) (*model.Account, error)
	AdjustAmount(ctx context.Context, userID uint, delta decimal.Decimal, txType model.TransactionType) (*model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByUserID returns the user's primary account, the one with the lowest ID.
func (r *accountRepository) FindByUserID(ctx context.Context, userID uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id").First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// AdjustAmount adds delta to the user's primary account and tags it with
// txType in one transaction. The sum is computed in decimal; a result below
// zero or outside the amount range is refused and nothing is written.
func (r *accountRepository) AdjustAmount(ctx context.Context, userID uint, delta decimal.Decimal, txType model.TransactionType) (*model.Account, error) {
	var updated *model.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &accountRepository{db: tx}

		account, err := txRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}

		amount := account.Amount.Add(delta)
		if amount.IsNegative() {
			return ErrInsufficientFunds
		}
		if !model.AmountInRange(amount) {
			return ErrAmountOutOfRange
		}

		if err := tx.Model(account).Updates(map[string]interface{}{
			"amount":           amount,
			"transaction_type": txType,
		}).Error; err != nil {
			return err
		}

		account.Amount = amount
		account.TransactionType = txType
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
