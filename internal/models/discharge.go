package models

import (
	"cmp"

	"golang.org/x/exp/slices"

	"github.com/shopspring/decimal"
)

// DischargeResult is the outcome of offsetting a payment against unsettled debits.
type DischargeResult struct {
	Payment *Transaction

	// Settled holds the debits whose outstanding balance changed, in
	// processing order.
	Settled []*Transaction

	// Discharged is the total amount moved from the payment onto debits.
	Discharged decimal.Decimal
}

// Discharge allocates payment.SignedAmount to candidates oldest first and
// leaves the undischarged remainder on payment.OutstandingBalance. Candidates
// are mutated in place. Only exact decimal subtraction is used.
func Discharge(payment *Transaction, candidates []*Transaction) DischargeResult {
	remaining := payment.SignedAmount
	result := DischargeResult{Payment: payment, Discharged: decimal.Zero}

	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, compareByEventOrder)

	for _, debit := range ordered {
		if debit.ID == payment.ID {
			continue
		}
		if !debit.OutstandingBalance.IsNegative() || !remaining.IsPositive() {
			continue
		}

		offset := decimal.Min(debit.OutstandingBalance.Abs(), remaining)
		debit.OutstandingBalance = debit.OutstandingBalance.Add(offset)
		remaining = remaining.Sub(offset)

		result.Discharged = result.Discharged.Add(offset)
		result.Settled = append(result.Settled, debit)
	}

	payment.OutstandingBalance = remaining

	return result
}

// WriteSet returns the payment and every modified debit ordered by event
// timestamp, then id.
func (r DischargeResult) WriteSet() []*Transaction {
	out := make([]*Transaction, 0, len(r.Settled)+1)
	out = append(out, r.Settled...)
	out = append(out, r.Payment)
	slices.SortStableFunc(out, compareByEventOrder)
	return out
}

func compareByEventOrder(a, b *Transaction) int {
	if c := a.EventTimestamp.Compare(b.EventTimestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
