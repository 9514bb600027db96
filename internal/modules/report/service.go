package report

import (
	"context"
	"time"
)

// Service defines the reporting queries exposed to callers.
type Service interface {
	TopProducts(ctx context.Context, limit int) ([]*ProductSales, error)
	RevenueLastMonth(ctx context.Context) (*Revenue, error)
	OrdersPerCustomer(ctx context.Context) ([]*CustomerOrders, error)
	FrequentCustomers(ctx context.Context, min int) ([]*CustomerOrders, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) TopProducts(ctx context.Context, limit int) ([]*ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.TopSellingProducts(ctx, limit)
}

func (s *service) RevenueLastMonth(ctx context.Context) (*Revenue, error) {
	return s.repo.RevenueSince(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) OrdersPerCustomer(ctx context.Context) ([]*CustomerOrders, error) {
	return s.repo.OrdersPerCustomer(ctx)
}

func (s *service) FrequentCustomers(ctx context.Context, min int) ([]*CustomerOrders, error) {
	if min <= 0 {
		min = 2
	}
	return s.repo.FrequentCustomers(ctx, min)
}
