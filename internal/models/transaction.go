package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int64
	AccountID       int64
	OperationTypeID OperationType

	// Amount is the positive value submitted by the caller.
	Amount decimal.Decimal

	// SignedAmount is Amount after the operation type's sign rule.
	SignedAmount decimal.Decimal

	// OutstandingBalance is the part of SignedAmount not yet discharged. It
	// moves toward zero and never changes sign.
	OutstandingBalance decimal.Decimal

	EventTimestamp time.Time
	Status         TransactionStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTransaction applies the sign rule and returns an unsaved, completed
// transaction whose outstanding balance equals its signed amount.
func NewTransaction(accountID int64, op OperationType, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	signed, err := ApplySignRule(op, amount)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		AccountID:          accountID,
		OperationTypeID:    op,
		Amount:             amount,
		SignedAmount:       signed,
		OutstandingBalance: signed,
		EventTimestamp:     now,
		Status:             TransactionStatusCompleted,
	}, nil
}

// IsSettled reports whether nothing is left to discharge.
func (t Transaction) IsSettled() bool {
	return t.OutstandingBalance.IsZero()
}

func (t Transaction) ToModelResponse() TransactionOut {
	return TransactionOut{
		TransactionID:   t.ID,
		AccountID:       t.AccountID,
		OperationTypeID: t.OperationTypeID,
		Amount:          NewDecimalFromExternal(t.SignedAmount),
		EventDate:       t.EventTimestamp,
	}
}

type CreateTransactionIn struct {
	AccountID       int64         `json:"accountId" validate:"required,gt=0" example:"1"`
	OperationTypeID OperationType `json:"operationTypeId" validate:"required" example:"4"`
	Amount          Decimal       `json:"amount" validate:"decimalGreaterThan=0,decimalMaxScale=2,decimalLessThan=1000000000000000000" swaggertype:"number" example:"123.45"`
}

type TransactionOut struct {
	TransactionID   int64         `json:"transactionId" example:"1"`
	AccountID       int64         `json:"accountId" example:"1"`
	OperationTypeID OperationType `json:"operationTypeId" example:"4"`
	Amount          Decimal       `json:"amount" swaggertype:"number" example:"-50.00"`
	EventDate       time.Time     `json:"eventDate" example:"2026-01-01T00:00:00Z"`
}
