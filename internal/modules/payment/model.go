package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle of a payment.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusRefunded Status = "REFUNDED"
)

// Method is one of the accepted payment methods.
type Method string

const (
	MethodCard        Method = "CARD"
	MethodCash        Method = "CASH"
	MethodUPI         Method = "UPI"
	MethodMobileMoney Method = "MOBILE_MONEY"
)

// ParseMethod normalises and validates a payment method string.
func ParseMethod(s string) (Method, bool) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodCard, MethodCash, MethodUPI, MethodMobileMoney:
		return m, true
	default:
		return "", false
	}
}

// Payment is the one-to-one payment record for an order. Amount equals the
// order total and never changes after creation. Method stays nil until the
// payment is processed.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    *Method         `json:"method,omitempty"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProcessPaymentRequest is the payload for processing an order's payment.
type ProcessPaymentRequest struct {
	Method string `json:"method"`
}
