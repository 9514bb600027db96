package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
	"github.com/mchisenga/storefront-backend/internal/events"
	"github.com/mchisenga/storefront-backend/internal/modules/order"
)

// Service defines payment business logic.
type Service interface {
	// CreatePending opens the single PENDING payment for an order. Called
	// by the order engine at placement; satisfies order.PaymentCreator.
	CreatePending(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) error

	GetByOrder(ctx context.Context, orderID string) (*Payment, error)

	// Process marks the payment PAID with the given method and cascades
	// the order to COMPLETED. A second call fails with apperr.ErrAlreadyPaid.
	Process(ctx context.Context, orderID, method string) (*Payment, error)

	// Refund marks the payment REFUNDED unconditionally, whatever its
	// current status. Order status and stock are untouched.
	Refund(ctx context.Context, orderID string) (*Payment, error)
}

type service struct {
	repo      Repository
	orders    order.Repository
	publisher events.Publisher
}

func NewService(repo Repository, orders order.Repository, publisher events.Publisher) Service {
	return &service{repo: repo, orders: orders, publisher: publisher}
}

func (s *service) CreatePending(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) error {
	_, err := s.repo.CreatePending(ctx, orderID, amount)
	return err
}

func (s *service) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.Validation("payment", "invalid order id: "+orderID)
	}
	return s.repo.GetByOrder(ctx, oid)
}

func (s *service) Process(ctx context.Context, orderID, method string) (*Payment, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.Validation("payment", "invalid order id: "+orderID)
	}
	m, ok := ParseMethod(method)
	if !ok {
		return nil, apperr.Validation("payment", "unknown payment method: "+method)
	}

	p, err := s.repo.GetByOrder(ctx, oid)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPaid {
		return nil, apperr.AlreadyPaid(orderID)
	}

	paid, err := s.repo.UpdateStatus(ctx, p.ID, StatusPaid, &m)
	if err != nil {
		return nil, err
	}

	// Cascade completion. Idempotent on the order side: the order may
	// already be COMPLETED via the manual path. If this write fails the
	// payment stays PAID, so report the gap as a distinct condition
	// instead of masking it.
	if _, err := s.orders.UpdateStatus(ctx, oid, order.StatusCompleted); err != nil {
		return paid, apperr.PartialCompletion(orderID, err)
	}

	s.publisher.Publish(events.TopicPaymentProcessed, orderID, events.PaymentPayload{
		PaymentID: paid.ID.String(),
		OrderID:   orderID,
		Amount:    paid.Amount.String(),
		Method:    string(m),
		Status:    string(StatusPaid),
	})
	return paid, nil
}

func (s *service) Refund(ctx context.Context, orderID string) (*Payment, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.Validation("payment", "invalid order id: "+orderID)
	}
	p, err := s.repo.GetByOrder(ctx, oid)
	if err != nil {
		return nil, err
	}

	refunded, err := s.repo.UpdateStatus(ctx, p.ID, StatusRefunded, nil)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(events.TopicPaymentRefunded, orderID, events.PaymentPayload{
		PaymentID: refunded.ID.String(),
		OrderID:   orderID,
		Amount:    refunded.Amount.String(),
		Status:    string(StatusRefunded),
	})
	return refunded, nil
}
