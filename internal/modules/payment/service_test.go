package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
	"github.com/mchisenga/storefront-backend/internal/events"
	"github.com/mchisenga/storefront-backend/internal/modules/catalog"
	"github.com/mchisenga/storefront-backend/internal/modules/customer"
	"github.com/mchisenga/storefront-backend/internal/modules/order"
)

// stack wires the full placement pipeline over in-memory stores so tests
// exercise the real pending-payment creation path.
type stack struct {
	products *catalog.MemoryRepository
	orders   order.Repository
	payments Service
	engine   order.Service
	recorder *events.Recorder

	customerID uuid.UUID
	productID  uuid.UUID
}

func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	products := catalog.NewMemoryRepository()
	customers := customer.NewMemoryRepository()
	orders := order.NewMemoryRepository()
	recorder := events.NewRecorder()

	payments := NewService(NewMemoryRepository(), orders, recorder)
	engine := order.NewService(customers, products, products, orders, payments, recorder)

	c, err := customers.Create(ctx, &customer.Customer{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	p, err := products.Create(ctx, &catalog.Product{
		Name: "Widget", SKU: "W-1",
		Price: decimal.RequireFromString("5.00"), Stock: 10,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	return &stack{
		products: products, orders: orders, payments: payments,
		engine: engine, recorder: recorder,
		customerID: c.ID, productID: p.ID,
	}
}

func (s *stack) place(t *testing.T, qty int) *order.Details {
	t.Helper()
	details, err := s.engine.PlaceOrder(context.Background(), order.PlaceOrderRequest{
		CustomerID: s.customerID.String(),
		Items:      []order.CartItem{{ProductID: s.productID.String(), Quantity: qty}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return details
}

func TestPlacementOpensPendingPayment(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 2)

	p, err := s.payments.GetByOrder(ctx, details.ID.String())
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", p.Status)
	}
	if !p.Amount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected amount 10.00, got %s", p.Amount)
	}
	if p.Method != nil {
		t.Fatalf("method must be unset before processing")
	}
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 2)

	paid, err := s.payments.Process(ctx, details.ID.String(), "card")
	if err != nil {
		t.Fatalf("process payment: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Fatalf("expected PAID, got %s", paid.Status)
	}
	if paid.Method == nil || *paid.Method != MethodCard {
		t.Fatalf("expected method CARD, got %v", paid.Method)
	}
	if !paid.Amount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("amount must be preserved, got %s", paid.Amount)
	}

	o, err := s.orders.GetOrderByID(ctx, details.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Status != order.StatusCompleted {
		t.Fatalf("expected order COMPLETED after payment, got %s", o.Status)
	}

	if _, err := s.payments.Process(ctx, details.ID.String(), "cash"); !errors.Is(err, apperr.ErrAlreadyPaid) {
		t.Fatalf("expected already paid, got %v", err)
	}

	var sawProcessed bool
	for _, e := range s.recorder.Events() {
		if e.Topic == events.TopicPaymentProcessed && e.Key == details.ID.String() {
			sawProcessed = true
		}
	}
	if !sawProcessed {
		t.Fatalf("expected a %s event", events.TopicPaymentProcessed)
	}
}

func TestProcessPayment_BadInput(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 1)

	if _, err := s.payments.Process(ctx, uuid.NewString(), "card"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.payments.Process(ctx, details.ID.String(), "cheque"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for unknown method, got %v", err)
	}
	if _, err := s.payments.Process(ctx, "not-a-uuid", "card"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for bad id, got %v", err)
	}
}

func TestRefund_IsPermissive(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 2)

	// Refunding a payment that was never processed is allowed.
	refunded, err := s.payments.Refund(ctx, details.ID.String())
	if err != nil {
		t.Fatalf("refund pending payment: %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", refunded.Status)
	}

	// So is refunding twice.
	if _, err := s.payments.Refund(ctx, details.ID.String()); err != nil {
		t.Fatalf("second refund: %v", err)
	}

	// Refund touches neither the order nor the stock.
	o, err := s.orders.GetOrderByID(ctx, details.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Status != order.StatusPlaced {
		t.Fatalf("order status must be untouched, got %s", o.Status)
	}
	p, err := s.products.GetByID(ctx, s.productID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.Stock != 8 {
		t.Fatalf("stock must be untouched, got %d", p.Stock)
	}
}

func TestRefundAfterProcess(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 1)

	if _, err := s.payments.Process(ctx, details.ID.String(), "upi"); err != nil {
		t.Fatalf("process: %v", err)
	}
	refunded, err := s.payments.Refund(ctx, details.ID.String())
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", refunded.Status)
	}
	// The order stays COMPLETED; refunds never roll orders back.
	o, _ := s.orders.GetOrderByID(ctx, details.ID)
	if o.Status != order.StatusCompleted {
		t.Fatalf("expected order COMPLETED, got %s", o.Status)
	}
}

func TestCreatePending_RejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 1)

	err := s.payments.CreatePending(ctx, details.ID, decimal.RequireFromString("1.00"))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// The original amount survives.
	p, _ := s.payments.GetByOrder(ctx, details.ID.String())
	if !p.Amount.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected amount 5.00, got %s", p.Amount)
	}
}

// stuckOrders refuses status updates, simulating an order store outage
// between the payment write and the completion cascade.
type stuckOrders struct {
	order.Repository
}

func (s *stuckOrders) UpdateStatus(context.Context, uuid.UUID, order.OrderStatus) (*order.Order, error) {
	return nil, errors.New("order store unavailable")
}

func TestProcess_SurfacesPartialCompletion(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	details := s.place(t, 2)

	broken := NewService(repoOf(t, s), &stuckOrders{Repository: s.orders}, events.Nop{})

	paid, err := broken.Process(ctx, details.ID.String(), "card")
	if !errors.Is(err, apperr.ErrPartialCompletion) {
		t.Fatalf("expected partial completion, got %v", err)
	}
	// The payment side of the cascade did land.
	if paid == nil || paid.Status != StatusPaid {
		t.Fatalf("payment must be PAID despite the gap, got %+v", paid)
	}
	// The order write never landed.
	o, _ := s.orders.GetOrderByID(ctx, details.ID)
	if o.Status != order.StatusPlaced {
		t.Fatalf("expected order still PLACED, got %s", o.Status)
	}
}

// repoOf digs the repository back out of the wired service so the broken
// variant shares payment state with the stack.
func repoOf(t *testing.T, s *stack) Repository {
	t.Helper()
	svc, ok := s.payments.(*service)
	if !ok {
		t.Fatalf("unexpected service implementation")
	}
	return svc.repo
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"card": MethodCard, "CARD": MethodCard, " Cash ": MethodCash,
		"upi": MethodUPI, "mobile_money": MethodMobileMoney,
	}
	for in, want := range cases {
		got, ok := ParseMethod(in)
		if !ok || got != want {
			t.Fatalf("ParseMethod(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseMethod("barter"); ok {
		t.Fatalf("expected barter to be rejected")
	}
}
