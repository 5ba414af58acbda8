package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags the last operation applied to an account.
type TransactionType string

const (
	TransactionTypeOpening  TransactionType = "opening"
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 2

// MaxAmount bounds the magnitude of any amount, matching decimal(20,2).
var MaxAmount = decimal.New(1, 20-AmountScale)

// AmountInRange reports whether d has at most AmountScale decimal places
// and a magnitude below MaxAmount.
func AmountInRange(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale)) && d.Abs().LessThan(MaxAmount)
}

// Account holds the balance of a single user account. Amount is stored as
// its exact decimal text; SQLite would otherwise keep fractions as REAL.
type Account struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"userId" gorm:"not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:text;not null;default:'0'"`
	TransactionType TransactionType `json:"transactionType" gorm:"type:text;not null"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
