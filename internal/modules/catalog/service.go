package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	// AddProduct validates price and SKU uniqueness and creates the product.
	AddProduct(ctx context.Context, req AddProductRequest) (*Product, error)

	GetProduct(ctx context.Context, id string) (*Product, error)

	GetBySKU(ctx context.Context, sku string) (*Product, error)

	ListProducts(ctx context.Context, limit int, category string) ([]*Product, error)

	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)

	DeleteProduct(ctx context.Context, id string) error

	// Restock adds a positive delta to the product's stock.
	Restock(ctx context.Context, id string, delta int) (*Product, error)

	// LowStock lists products at or below the threshold.
	LowStock(ctx context.Context, threshold int) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) AddProduct(ctx context.Context, req AddProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, apperr.Validation("product", "name is required")
	}
	if req.SKU == "" {
		return nil, apperr.Validation("product", "sku is required")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, apperr.Validation("product", fmt.Sprintf("invalid price %q", req.Price))
	}
	if !price.IsPositive() {
		return nil, apperr.Validation("product", "price must be greater than 0")
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("product", "stock cannot be negative")
	}

	if existing, err := s.repo.GetBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, apperr.Conflict("product", "sku already exists: "+req.SKU)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, &Product{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    price,
		Stock:    req.Stock,
		Category: req.Category,
	})
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("product", "invalid id: "+id)
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *service) ListProducts(ctx context.Context, limit int, category string) ([]*Product, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, limit, category)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("product", "invalid id: "+id)
	}
	p, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || !price.IsPositive() {
			return nil, apperr.Validation("product", "price must be a positive number")
		}
		p.Price = price
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	return s.repo.Update(ctx, p)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("product", "invalid id: "+id)
	}
	return s.repo.Delete(ctx, uid)
}

func (s *service) Restock(ctx context.Context, id string, delta int) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("product", "invalid id: "+id)
	}
	if delta <= 0 {
		return nil, apperr.Validation("product", "restock delta must be positive")
	}
	return s.repo.Restock(ctx, uid, delta)
}

func (s *service) LowStock(ctx context.Context, threshold int) ([]*Product, error) {
	if threshold < 0 {
		threshold = 0
	}
	all, err := s.repo.List(ctx, 1000, "")
	if err != nil {
		return nil, err
	}
	low := make([]*Product, 0)
	for _, p := range all {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}
