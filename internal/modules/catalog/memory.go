package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// MemoryRepository is an in-memory Repository used by tests and local runs.
// It also implements the inventory ledger contract: Reserve and Release run
// as a conditional read-modify-write under the store lock, so concurrent
// reservations against one product cannot overdraw stock.
type MemoryRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*Product
	order    []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[uuid.UUID]*Product)}
}

func (m *MemoryRepository) Create(_ context.Context, p *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = uuid.New()
	now := time.Now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	m.products[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	out := cp
	return &out, nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id.String())
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) GetBySKU(_ context.Context, sku string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("product", sku)
}

func (m *MemoryRepository) List(_ context.Context, limit int, category string) ([]*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Product, 0, len(m.order))
	for _, id := range m.order {
		p, ok := m.products[id]
		if !ok {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		cp := *p
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepository) Update(_ context.Context, p *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.products[p.ID]
	if !ok {
		return nil, apperr.NotFound("product", p.ID.String())
	}
	cur.Name = p.Name
	cur.Price = p.Price
	cur.Category = p.Category
	cur.UpdatedAt = time.Now()
	cp := *cur
	return &cp, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return apperr.NotFound("product", id.String())
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryRepository) Restock(_ context.Context, id uuid.UUID, delta int) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id.String())
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

// Reserve decrements stock by qty only if enough is available.
func (m *MemoryRepository) Reserve(_ context.Context, productID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return apperr.NotFound("product", productID.String())
	}
	if p.Stock < qty {
		return apperr.InsufficientStock(productID.String(), qty, p.Stock)
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	return nil
}

// Release credits qty back unconditionally.
func (m *MemoryRepository) Release(_ context.Context, productID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return apperr.NotFound("product", productID.String())
	}
	p.Stock += qty
	p.UpdatedAt = time.Now()
	return nil
}
