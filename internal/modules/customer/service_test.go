package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

func TestAddCustomer(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	c, err := svc.AddCustomer(ctx, AddCustomerRequest{
		Name: "Jane", Email: "  Jane@Example.COM ", City: "Lusaka",
	})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	if c.Email != "jane@example.com" {
		t.Fatalf("email must be normalised, got %q", c.Email)
	}

	got, err := svc.GetCustomer(ctx, c.ID.String())
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Name != "Jane" || got.City != "Lusaka" {
		t.Fatalf("unexpected customer: %+v", got)
	}
}

func TestAddCustomer_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.AddCustomer(ctx, AddCustomerRequest{Email: "a@b.com"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	if _, err := svc.AddCustomer(ctx, AddCustomerRequest{Name: "Jane", Email: "not-an-email"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
}

func TestAddCustomer_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.AddCustomer(ctx, AddCustomerRequest{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("add customer: %v", err)
	}
	// Uniqueness is case-insensitive through normalisation.
	_, err := svc.AddCustomer(ctx, AddCustomerRequest{Name: "Janet", Email: "JANE@example.com"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	seed := []AddCustomerRequest{
		{Name: "Jane", Email: "jane@example.com", City: "Lusaka"},
		{Name: "Joe", Email: "joe@example.com", City: "Kitwe"},
		{Name: "Ann", Email: "ann@shop.example", City: "Lusaka"},
	}
	for _, req := range seed {
		if _, err := svc.AddCustomer(ctx, req); err != nil {
			t.Fatalf("seed %s: %v", req.Email, err)
		}
	}

	byCity, err := svc.Search(ctx, "", "Lusaka")
	if err != nil {
		t.Fatalf("search by city: %v", err)
	}
	if len(byCity) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(byCity))
	}

	byEmail, err := svc.Search(ctx, "JOE@example.com", "")
	if err != nil {
		t.Fatalf("search by email: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Name != "Joe" {
		t.Fatalf("unexpected matches: %+v", byEmail)
	}
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	c, err := svc.AddCustomer(ctx, AddCustomerRequest{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	updated, err := svc.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{City: "Ndola"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Ndola" || updated.Name != "Jane" {
		t.Fatalf("unexpected customer after update: %+v", updated)
	}
}
