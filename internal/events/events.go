// Package events publishes order and payment lifecycle events. Publishing is
// best effort and happens after the terminal write commits; the consistency
// engine never depends on it.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrderPlaced      = "order.placed"
	TopicOrderCancelled   = "order.cancelled"
	TopicOrderCompleted   = "order.completed"
	TopicPaymentProcessed = "payment.processed"
	TopicPaymentRefunded  = "payment.refunded"
)

type Envelope struct {
	EventID    string          `json:"event_id"`
	Topic      string          `json:"topic"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	TotalAmount string `json:"total_amount"`
}

type OrderStatusPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type PaymentPayload struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method,omitempty"`
	Status    string `json:"status"`
}

// Publisher is consumed by the order and payment services. Key is the order
// id so all events for one order keep their relative order on the transport.
type Publisher interface {
	Publish(topic, key string, payload any)
}

func newEnvelope(topic, producer string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:    uuid.NewString(),
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Payload:    b,
	}, nil
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, string, any) {}
