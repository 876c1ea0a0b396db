package models

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
)

type OperationType int32

const (
	OperationTypeCashPurchase        OperationType = 1
	OperationTypeInstallmentPurchase OperationType = 2
	OperationTypeWithdrawal          OperationType = 3
	OperationTypePayment             OperationType = 4
)

type signRule int8

const (
	signNegate signRule = iota
	signIdentity
)

type operationTypeEntry struct {
	description string
	sign        signRule
}

// operationTypes is read-only after package init.
var operationTypes = map[OperationType]operationTypeEntry{
	OperationTypeCashPurchase:        {description: "CASH PURCHASE", sign: signNegate},
	OperationTypeInstallmentPurchase: {description: "INSTALLMENT PURCHASE", sign: signNegate},
	OperationTypeWithdrawal:          {description: "WITHDRAWAL", sign: signNegate},
	OperationTypePayment:             {description: "PAYMENT", sign: signIdentity},
}

// ApplySignRule returns amount negated for debit operation types and unchanged
// for the credit type. Positivity of amount is the caller's concern.
func ApplySignRule(id OperationType, amount decimal.Decimal) (decimal.Decimal, error) {
	entry, ok := operationTypes[id]
	if !ok {
		return decimal.Decimal{}, common.ErrInvalidOperationType
	}

	if entry.sign == signNegate {
		return amount.Neg(), nil
	}

	return amount, nil
}

// DescribeOperationType is meant for diagnostics only.
func DescribeOperationType(id OperationType) (string, bool) {
	entry, ok := operationTypes[id]
	return entry.description, ok
}

// IsCredit reports whether transactions of this type are discharged against
// earlier debits.
func (o OperationType) IsCredit() bool {
	entry, ok := operationTypes[o]
	return ok && entry.sign == signIdentity
}

func (o OperationType) String() string {
	if desc, ok := DescribeOperationType(o); ok {
		return desc
	}
	return "UNKNOWN"
}
