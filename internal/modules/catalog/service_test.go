package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

func addProduct(t *testing.T, svc Service, sku, price string, stock int) *Product {
	t.Helper()
	p, err := svc.AddProduct(context.Background(), AddProductRequest{
		Name: "Widget " + sku, SKU: sku, Price: price, Stock: stock,
	})
	if err != nil {
		t.Fatalf("add product %s: %v", sku, err)
	}
	return p
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	p := addProduct(t, svc, "W-1", "12.50", 7)
	if p.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}
	if p.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", p.Stock)
	}

	got, err := svc.GetBySKU(ctx, "W-1")
	if err != nil {
		t.Fatalf("get by sku: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("sku lookup returned wrong product")
	}
}

func TestAddProduct_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	cases := []struct {
		name string
		req  AddProductRequest
		want error
	}{
		{"missing name", AddProductRequest{SKU: "A", Price: "1.00"}, apperr.ErrValidation},
		{"missing sku", AddProductRequest{Name: "A", Price: "1.00"}, apperr.ErrValidation},
		{"bad price", AddProductRequest{Name: "A", SKU: "A", Price: "free"}, apperr.ErrValidation},
		{"zero price", AddProductRequest{Name: "A", SKU: "A", Price: "0"}, apperr.ErrValidation},
		{"negative price", AddProductRequest{Name: "A", SKU: "A", Price: "-2.00"}, apperr.ErrValidation},
		{"negative stock", AddProductRequest{Name: "A", SKU: "A", Price: "1.00", Stock: -1}, apperr.ErrValidation},
	}
	for _, tc := range cases {
		if _, err := svc.AddProduct(ctx, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAddProduct_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	addProduct(t, svc, "W-1", "1.00", 1)

	_, err := svc.AddProduct(ctx, AddProductRequest{Name: "Other", SKU: "W-1", Price: "2.00"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateProduct_NeverTouchesStock(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	p := addProduct(t, svc, "W-1", "1.00", 9)

	updated, err := svc.UpdateProduct(ctx, p.ID.String(), UpdateProductRequest{
		Name: "Renamed", Price: "3.25",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Price.String() != "3.25" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.Stock != 9 {
		t.Fatalf("update must not touch stock, got %d", updated.Stock)
	}
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	p := addProduct(t, svc, "W-1", "1.00", 2)

	restocked, err := svc.Restock(ctx, p.ID.String(), 5)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if restocked.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", restocked.Stock)
	}

	if _, err := svc.Restock(ctx, p.ID.String(), 0); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for zero delta, got %v", err)
	}
	if _, err := svc.Restock(ctx, uuid.NewString(), 3); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	low := addProduct(t, svc, "LOW", "1.00", 2)
	addProduct(t, svc, "HIGH", "1.00", 50)
	zero := addProduct(t, svc, "ZERO", "1.00", 0)

	got, err := svc.LowStock(ctx, 5)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(got))
	}
	if got[0].ID != low.ID || got[1].ID != zero.ID {
		t.Fatalf("unexpected low-stock set: %+v", got)
	}
}

func TestReserveRelease(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	p, err := repo.Create(ctx, &Product{Name: "W", SKU: "W-1", Stock: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Reserve(ctx, p.ID, 3); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := repo.Reserve(ctx, p.ID, 3); !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := repo.Release(ctx, p.ID, 3); err != nil {
		t.Fatalf("release: %v", err)
	}
	cur, _ := repo.GetByID(ctx, p.ID)
	if cur.Stock != 5 {
		t.Fatalf("expected stock 5, got %d", cur.Stock)
	}

	if err := repo.Reserve(ctx, uuid.New(), 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserve_ConcurrentNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	p, err := repo.Create(ctx, &Product{Name: "W", SKU: "W-1", Stock: 100})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 200
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Reserve(ctx, p.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, short int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperr.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 100 || short != 100 {
		t.Fatalf("expected 100 reservations and 100 rejections, got %d/%d", ok, short)
	}
	cur, _ := repo.GetByID(ctx, p.ID)
	if cur.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", cur.Stock)
	}
}
