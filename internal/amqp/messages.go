package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type EventType string

const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionUpdated EventType = "transaction.updated"
	EventTransactionDeleted EventType = "transaction.deleted"
	EventPropertyDeleted    EventType = "property.deleted"
)

var ErrUnknownEvent = errors.New("unknown ledger event")

// LedgerEvent announces a ledger change. It carries ids only; consumers
// read current state from the store.
type LedgerEvent struct {
	Event         EventType `json:"event"`
	TransactionID string    `json:"transaction_id,omitempty"`
	PropertyID    string    `json:"property_id"`
	Month         string    `json:"month,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerEvent(event EventType, transactionID, propertyID, month string) *LedgerEvent {
	return &LedgerEvent{
		Event:         event,
		TransactionID: transactionID,
		PropertyID:    propertyID,
		Month:         month,
		Timestamp:     time.Now().UTC(),
	}
}

func (e EventType) Valid() bool {
	switch e {
	case EventTransactionCreated, EventTransactionUpdated, EventTransactionDeleted, EventPropertyDeleted:
		return true
	}
	return false
}

func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON decodes and checks the event type.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if !msg.Event.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Event)
	}
	return &msg, nil
}
