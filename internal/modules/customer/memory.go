package customer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// MemoryRepository is an in-memory Repository used by tests and local runs.
type MemoryRepository struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*Customer
	order     []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{customers: make(map[uuid.UUID]*Customer)}
}

func (m *MemoryRepository) Create(_ context.Context, c *Customer) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.ID = uuid.New()
	now := time.Now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	m.customers[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	out := cp
	return &out, nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer", id.String())
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryRepository) GetByEmail(_ context.Context, email string) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("customer", email)
}

func (m *MemoryRepository) List(_ context.Context, limit int) ([]*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Customer, 0, len(m.order))
	for _, id := range m.order {
		c, ok := m.customers[id]
		if !ok {
			continue
		}
		cp := *c
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepository) Update(_ context.Context, c *Customer) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.customers[c.ID]
	if !ok {
		return nil, apperr.NotFound("customer", c.ID.String())
	}
	cur.Name, cur.Phone, cur.City = c.Name, c.Phone, c.City
	cur.UpdatedAt = time.Now()
	cp := *cur
	return &cp, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return apperr.NotFound("customer", id.String())
	}
	delete(m.customers, id)
	return nil
}

func (m *MemoryRepository) Search(_ context.Context, email, city string) ([]*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Customer, 0)
	for _, id := range m.order {
		c, ok := m.customers[id]
		if !ok {
			continue
		}
		if email != "" && c.Email != email {
			continue
		}
		if city != "" && c.City != city {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}
