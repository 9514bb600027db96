package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// MemoryRepository is an in-memory Repository used by tests and local runs.
type MemoryRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*Order
	seq    []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[uuid.UUID]*Order)}
}

func (m *MemoryRepository) CreateOrder(_ context.Context, o *Order) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneOrder(o)
	cp.ID = uuid.New()
	now := time.Now()
	cp.OrderedAt, cp.UpdatedAt = now, now
	for _, item := range cp.Items {
		item.ID = uuid.New()
		item.OrderID = cp.ID
	}
	m.orders[cp.ID] = cp
	m.seq = append(m.seq, cp.ID)
	return cloneOrder(cp), nil
}

func (m *MemoryRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("order", id.String())
	}
	return cloneOrder(o), nil
}

func (m *MemoryRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Order, 0)
	for _, id := range m.seq {
		o := m.orders[id]
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status OrderStatus) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("order", id.String())
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return cloneOrder(o), nil
}

func cloneOrder(o *Order) *Order {
	cp := *o
	cp.Items = make([]*OrderItem, len(o.Items))
	for i, item := range o.Items {
		ic := *item
		cp.Items[i] = &ic
	}
	return &cp
}
