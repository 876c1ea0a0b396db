package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const EventSourceLedger = "go-fp-ledger"

type EventType string

const (
	EventTypeNotifyAccountCreated EventType = "NOTIFY_ACCOUNT_CREATED_SUCCESS"
	EventTypeAccountCreated       EventType = "ACCOUNT_CREATED"
	EventTypeTransactionCreated   EventType = "TRANSACTION_CREATED"
)

// EventPayload ties a payload type to exactly one event type, so an envelope
// can never advertise a kind its data does not have.
type EventPayload interface {
	EventType() EventType
}

type EventMetadata struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

type Event[T EventPayload] struct {
	EventID   string        `json:"eventId"`
	EventType EventType     `json:"eventType"`
	EventDate time.Time     `json:"eventDate"`
	EventData T             `json:"eventData"`
	Metadata  EventMetadata `json:"metadata"`
}

func NewEvent[T EventPayload](id string, data T, now time.Time) Event[T] {
	return Event[T]{
		EventID:   id,
		EventType: data.EventType(),
		EventDate: now,
		EventData: data,
		Metadata: EventMetadata{
			Source:    EventSourceLedger,
			Timestamp: now,
		},
	}
}

// RawEvent is the consumer side view of an envelope before the payload kind
// is known.
type RawEvent struct {
	EventID   string          `json:"eventId"`
	EventType EventType       `json:"eventType"`
	EventDate time.Time       `json:"eventDate"`
	EventData json.RawMessage `json:"eventData"`
	Metadata  EventMetadata   `json:"metadata"`
}

// DecodeEvent decodes raw into the typed envelope for T, failing when the
// envelope's event type does not belong to T.
func DecodeEvent[T EventPayload](raw RawEvent) (Event[T], error) {
	var data T
	if raw.EventType != data.EventType() {
		return Event[T]{}, fmt.Errorf("unexpected event type %q, want %q", raw.EventType, data.EventType())
	}

	if err := json.Unmarshal(raw.EventData, &data); err != nil {
		return Event[T]{}, fmt.Errorf("failed to decode %s payload: %w", raw.EventType, err)
	}

	return Event[T]{
		EventID:   raw.EventID,
		EventType: raw.EventType,
		EventDate: raw.EventDate,
		EventData: data,
		Metadata:  raw.Metadata,
	}, nil
}

type AccountCreatedNotification struct {
	AccountID         int64   `json:"accountId"`
	AccountHolderName string  `json:"accountHolderName"`
	Balance           Decimal `json:"balance"`
}

func (AccountCreatedNotification) EventType() EventType { return EventTypeNotifyAccountCreated }

type AccountCreatedAudit struct {
	AccountID      int64   `json:"accountId"`
	DocumentNumber string  `json:"documentNumber"`
	Balance        Decimal `json:"balance"`
}

func (AccountCreatedAudit) EventType() EventType { return EventTypeAccountCreated }

type TransactionCreatedAudit struct {
	TransactionID      int64         `json:"transactionId"`
	AccountID          int64         `json:"accountId"`
	OperationTypeID    OperationType `json:"operationTypeId"`
	Amount             Decimal       `json:"amount"`
	OutstandingBalance Decimal       `json:"outstandingBalance"`
	EventTimestamp     time.Time     `json:"eventTimestamp"`
}

func (TransactionCreatedAudit) EventType() EventType { return EventTypeTransactionCreated }

func NewAccountCreatedNotification(a Account) AccountCreatedNotification {
	return AccountCreatedNotification{
		AccountID: a.ID,
		Balance:   NewDecimalFromExternal(a.AvailableBalance),
	}
}

func NewAccountCreatedAudit(a Account) AccountCreatedAudit {
	return AccountCreatedAudit{
		AccountID:      a.ID,
		DocumentNumber: a.DocumentNumber,
		Balance:        NewDecimalFromExternal(a.AvailableBalance),
	}
}

func NewTransactionCreatedAudit(t Transaction) TransactionCreatedAudit {
	return TransactionCreatedAudit{
		TransactionID:      t.ID,
		AccountID:          t.AccountID,
		OperationTypeID:    t.OperationTypeID,
		Amount:             NewDecimalFromExternal(t.SignedAmount),
		OutstandingBalance: NewDecimalFromExternal(t.OutstandingBalance),
		EventTimestamp:     t.EventTimestamp,
	}
}
