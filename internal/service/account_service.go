package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"minibank/internal/cache"
	apperrors "minibank/internal/errors"
	"minibank/internal/model"
	"minibank/internal/repository"
)

const accountCacheTTL = 5 * time.Minute

// AccountCache is the cache used for account reads. *cache.Client
// implements it.
type AccountCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// AccountService handles account reads and balance changes.
type AccountService interface {
	GetAccount(ctx context.Context, userID uint) (*model.Account, error)
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal) (*model.Account, error)
	Withdraw(ctx context.Context, userID uint, amount decimal.Decimal) (*model.Account, error)
}

type accountService struct {
	repo  repository.AccountRepository
	cache AccountCache
}

// NewAccountService creates a new account service. A nil cache disables
// caching.
func NewAccountService(repo repository.AccountRepository, accountCache AccountCache) AccountService {
	if accountCache == nil {
		// a nil *cache.Client is an always-empty cache
		accountCache = (*cache.Client)(nil)
	}
	return &accountService{
		repo:  repo,
		cache: accountCache,
	}
}

func (s *accountService) cacheKey(userID uint) string {
	return fmt.Sprintf("account:user:%d", userID)
}

// GetAccount retrieves the user's account with caching.
func (s *accountService) GetAccount(ctx context.Context, userID uint) (*model.Account, error) {
	var cached model.Account
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	account, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(userID), account, accountCacheTTL)
	return account, nil
}

// Deposit credits amount to the user's account.
func (s *accountService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) (*model.Account, error) {
	if !validAmount(amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	return s.adjust(ctx, userID, amount, model.TransactionTypeDeposit)
}

// Withdraw debits amount from the user's account.
func (s *accountService) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal) (*model.Account, error) {
	if !validAmount(amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	return s.adjust(ctx, userID, amount.Neg(), model.TransactionTypeWithdraw)
}

// validAmount accepts positive amounts with at most two decimal places
// that fit the amount column.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && model.AmountInRange(amount)
}

func (s *accountService) adjust(ctx context.Context, userID uint, delta decimal.Decimal, txType model.TransactionType) (*model.Account, error) {
	account, err := s.repo.AdjustAmount(ctx, userID, delta, txType)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.ErrAccountNotFound
	case errors.Is(err, repository.ErrInsufficientFunds):
		return nil, apperrors.ErrInsufficientBalance
	case errors.Is(err, repository.ErrAmountOutOfRange):
		return nil, apperrors.ErrInvalidAmount
	case err != nil:
		return nil, fmt.Errorf("%s: %w", txType, err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(userID), account, accountCacheTTL)
	return account, nil
}
