package amqp

import (
	"encoding/json"
	"time"
)

// Transaction event names published to downstream collaborators (export,
// notifications). Consumers fetch the current record by id; deleted ids no
// longer resolve.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// TransactionEventMessage is the wire payload: just the event name, the
// transaction id, and when it happened.
type TransactionEventMessage struct {
	Event         string    `json:"event"`
	TransactionID int64     `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransactionEventMessage(event string, transactionID int64) *TransactionEventMessage {
	return &TransactionEventMessage{
		Event:         event,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
