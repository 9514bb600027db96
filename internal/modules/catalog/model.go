package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item in the store catalog with a finite stock quantity.
// Stock is mutated only through the inventory ledger, never by a plain
// field update from workflow code.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AddProductRequest is the payload for creating a catalog product.
type AddProductRequest struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	Category string `json:"category,omitempty"`
}

// UpdateProductRequest carries the mutable product fields. Stock is absent
// on purpose: restock and order workflows own stock changes.
type UpdateProductRequest struct {
	Name     string `json:"name,omitempty"`
	Price    string `json:"price,omitempty"`
	Category string `json:"category,omitempty"`
}

// RestockRequest adds quantity to a product's stock.
type RestockRequest struct {
	Delta int `json:"delta"`
}
