package models

type TransactionStatus string

func (m TransactionStatus) String() string {
	return string(m)
}

// TransactionStatusCompleted is terminal; no other transitions are modelled.
const TransactionStatusCompleted TransactionStatus = "COMPLETED"
