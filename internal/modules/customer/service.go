package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// Service defines customer business logic.
type Service interface {
	// AddCustomer registers a customer; email must be unique.
	AddCustomer(ctx context.Context, req AddCustomerRequest) (*Customer, error)

	GetCustomer(ctx context.Context, id string) (*Customer, error)

	ListCustomers(ctx context.Context, limit int) ([]*Customer, error)

	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error)

	DeleteCustomer(ctx context.Context, id string) error

	Search(ctx context.Context, email, city string) ([]*Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) AddCustomer(ctx context.Context, req AddCustomerRequest) (*Customer, error) {
	if req.Name == "" {
		return nil, apperr.Validation("customer", "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("customer", "a valid email is required")
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperr.Conflict("customer", "email already registered: "+email)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, &Customer{
		Name:  req.Name,
		Email: email,
		Phone: req.Phone,
		City:  req.City,
	})
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("customer", "invalid id: "+id)
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListCustomers(ctx context.Context, limit int) ([]*Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}

func (s *service) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("customer", "invalid id: "+id)
	}
	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.City != "" {
		c.City = req.City
	}
	return s.repo.Update(ctx, c)
}

func (s *service) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("customer", "invalid id: "+id)
	}
	return s.repo.Delete(ctx, uid)
}

func (s *service) Search(ctx context.Context, email, city string) ([]*Customer, error) {
	return s.repo.Search(ctx, strings.ToLower(strings.TrimSpace(email)), city)
}
