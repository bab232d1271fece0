package amqp

import (
	"encoding/json"
	"time"
)

// PaymentEventMessage notifies the export worker that a payment changed.
// It carries only identifiers; the worker reads the record from the shared
// collection store.
type PaymentEventMessage struct {
	Op        string    `json:"op"` // created | updated | deleted
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPaymentEventMessage(op, userID, paymentID string) *PaymentEventMessage {
	return &PaymentEventMessage{
		Op:        op,
		UserID:    userID,
		PaymentID: paymentID,
		Timestamp: time.Now(),
	}
}

func (m *PaymentEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentEventMessageFromJSON(data []byte) (*PaymentEventMessage, error) {
	var msg PaymentEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
