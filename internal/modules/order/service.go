package order

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
	"github.com/mchisenga/storefront-backend/internal/events"
	"github.com/mchisenga/storefront-backend/internal/modules/catalog"
	"github.com/mchisenga/storefront-backend/internal/modules/customer"
	"github.com/mchisenga/storefront-backend/internal/modules/inventory"
)

// PaymentCreator opens a PENDING payment for a freshly placed order. It is
// implemented by the payment service; declared here so the order package does
// not depend on the payment package.
type PaymentCreator interface {
	CreatePending(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) error
}

// Service is the order/stock/payment consistency engine. Each workflow reads
// current state, validates every precondition before the first mutation, then
// applies mutations in a fixed order, compensating on mid-flight failure.
type Service interface {
	// PlaceOrder validates the customer and every line item, reserves
	// stock, persists the order with its items, and opens a pending
	// payment for the computed total.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Details, error)

	// GetOrderDetails returns the order with items and customer attached.
	GetOrderDetails(ctx context.Context, id string) (*Details, error)

	ListCustomerOrders(ctx context.Context, customerID string) ([]*Order, error)

	// CancelOrder releases every line item's stock, then marks the order
	// CANCELLED. Only PLACED orders can be cancelled.
	CancelOrder(ctx context.Context, id string) (*Order, error)

	// CompleteOrder marks a PLACED order COMPLETED. Manual fulfillment
	// path: no stock or payment side effect.
	CompleteOrder(ctx context.Context, id string) (*Order, error)
}

type service struct {
	customers customer.Repository
	products  catalog.Repository
	ledger    inventory.Ledger
	orders    Repository
	payments  PaymentCreator
	publisher events.Publisher
}

func NewService(
	customers customer.Repository,
	products catalog.Repository,
	ledger inventory.Ledger,
	orders Repository,
	payments PaymentCreator,
	publisher events.Publisher,
) Service {
	return &service{
		customers: customers,
		products:  products,
		ledger:    ledger,
		orders:    orders,
		payments:  payments,
		publisher: publisher,
	}
}

type line struct {
	productID uuid.UUID
	quantity  int
	unitPrice decimal.Decimal
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Details, error) {
	custID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperr.Validation("order", "invalid customer_id: "+req.CustomerID)
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order", "order must contain at least one item")
	}

	cust, err := s.customers.GetByID(ctx, custID)
	if err != nil {
		return nil, err
	}

	// Validation pass: every item is checked before any stock is touched,
	// so a failure on item N never leaves items 1..N-1 reserved.
	lines := make([]line, 0, len(req.Items))
	total := decimal.Zero
	for _, ci := range req.Items {
		if ci.Quantity <= 0 {
			return nil, apperr.Validation("order", "quantity must be positive for product "+ci.ProductID)
		}
		pid, err := uuid.Parse(ci.ProductID)
		if err != nil {
			return nil, apperr.Validation("order", "invalid product_id: "+ci.ProductID)
		}
		p, err := s.products.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p.Stock < ci.Quantity {
			return nil, apperr.InsufficientStock(pid.String(), ci.Quantity, p.Stock)
		}
		lines = append(lines, line{productID: pid, quantity: ci.Quantity, unitPrice: p.Price})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(ci.Quantity))))
	}

	// Reservation pass. Stock may have been depleted concurrently since
	// validation; a mid-way failure rolls back what this request reserved.
	reserved := make([]line, 0, len(lines))
	for _, l := range lines {
		if err := s.ledger.Reserve(ctx, l.productID, l.quantity); err != nil {
			s.releaseAll(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, l)
	}

	items := make([]*OrderItem, len(lines))
	for i, l := range lines {
		items[i] = &OrderItem{
			ProductID: l.productID,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			LineTotal: l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity))),
		}
	}
	created, err := s.orders.CreateOrder(ctx, &Order{
		CustomerID: custID,
		Status:     StatusPlaced,
		Total:      total,
		Items:      items,
	})
	if err != nil {
		s.releaseAll(ctx, reserved)
		return nil, err
	}

	if err := s.payments.CreatePending(ctx, created.ID, total); err != nil {
		// The order row exists but the workflow failed: undo the
		// reservation and park the order in CANCELLED so no half-placed
		// order survives.
		s.releaseAll(ctx, reserved)
		if _, stErr := s.orders.UpdateStatus(ctx, created.ID, StatusCancelled); stErr != nil {
			log.Printf("order %s: cancel after payment-create failure: %v", created.ID, stErr)
		}
		return nil, err
	}

	s.publisher.Publish(events.TopicOrderPlaced, created.ID.String(), events.OrderPlacedPayload{
		OrderID:     created.ID.String(),
		CustomerID:  custID.String(),
		TotalAmount: total.String(),
	})
	return &Details{Order: created, Customer: cust}, nil
}

func (s *service) GetOrderDetails(ctx context.Context, id string) (*Details, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("order", "invalid id: "+id)
	}
	o, err := s.orders.GetOrderByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	cust, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return &Details{Order: o, Customer: cust}, nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID string) ([]*Order, error) {
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperr.Validation("order", "invalid customer_id: "+customerID)
	}
	return s.orders.ListByCustomer(ctx, cid)
}

func (s *service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("order", "invalid id: "+id)
	}
	o, err := s.orders.GetOrderByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPlaced {
		return nil, apperr.InvalidTransition("order", id,
			"only PLACED orders can be cancelled (current: "+string(o.Status)+")")
	}

	// Stock comes back before the status flip. If a release fails the
	// order stays PLACED and the error surfaces to the caller.
	for _, item := range o.Items {
		if err := s.ledger.Release(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, oid, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(events.TopicOrderCancelled, id, events.OrderStatusPayload{
		OrderID: id, Status: string(StatusCancelled),
	})
	return updated, nil
}

func (s *service) CompleteOrder(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("order", "invalid id: "+id)
	}
	o, err := s.orders.GetOrderByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, StatusCompleted) {
		return nil, apperr.InvalidTransition("order", id,
			"cannot complete order in status "+string(o.Status))
	}

	updated, err := s.orders.UpdateStatus(ctx, oid, StatusCompleted)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(events.TopicOrderCompleted, id, events.OrderStatusPayload{
		OrderID: id, Status: string(StatusCompleted),
	})
	return updated, nil
}

func (s *service) releaseAll(ctx context.Context, reserved []line) {
	for _, l := range reserved {
		if err := s.ledger.Release(ctx, l.productID, l.quantity); err != nil {
			log.Printf("compensating release for product %s qty %d: %v", l.productID, l.quantity, err)
		}
	}
}

func canTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
