package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// MemoryRepository is an in-memory Repository used by tests and local runs.
// Create-if-absent runs under the lock, matching the per-order guarantee of
// the postgres unique constraint.
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*Payment
	byOrder map[uuid.UUID]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*Payment),
		byOrder: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *MemoryRepository) CreatePending(_ context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byOrder[orderID]; exists {
		return nil, apperr.Conflict("payment", "payment already exists for order "+orderID.String())
	}
	now := time.Now()
	p := &Payment{
		ID:        uuid.New(),
		OrderID:   orderID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.byID[p.ID] = p
	m.byOrder[orderID] = p.ID
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) GetByOrder(_ context.Context, orderID uuid.UUID) (*Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byOrder[orderID]
	if !ok {
		return nil, apperr.NotFound("payment", orderID.String())
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status Status, method *Method) (*Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("payment", id.String())
	}
	p.Status = status
	if method != nil {
		mv := *method
		p.Method = &mv
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}
