package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const accountCacheKeyPrefix = "account:"

type Account struct {
	ID             int64
	DocumentNumber string

	// AvailableBalance is a display-only projection. The ledger, through
	// Transaction.OutstandingBalance, is the source of truth and this value
	// is never mutated after creation.
	AvailableBalance decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAccount(documentNumber string) Account {
	return Account{
		DocumentNumber:   documentNumber,
		AvailableBalance: decimal.Zero,
	}
}

func (a Account) ToModelResponse() AccountOut {
	return AccountOut{
		AccountID:      a.ID,
		DocumentNumber: a.DocumentNumber,
	}
}

// AccountCacheKey is the cache key holding the AccountOut projection.
func AccountCacheKey(accountID int64) string {
	return accountCacheKeyPrefix + strconv.FormatInt(accountID, 10)
}

type CreateAccountIn struct {
	DocumentNumber string `json:"documentNumber" validate:"required,notblank,max=64" example:"12345678900"`
}

type AccountOut struct {
	AccountID      int64  `json:"accountId" example:"1"`
	DocumentNumber string `json:"documentNumber" example:"12345678900"`
}

type DoGetAccountRequest struct {
	AccountID int64 `param:"accountId" validate:"required,gt=0"`
}
