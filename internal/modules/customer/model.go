package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer referenced by orders. The core never mutates customers
// during order workflows; it only reads them.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddCustomerRequest is the payload for registering a customer.
type AddCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}

// UpdateCustomerRequest carries the mutable customer fields.
type UpdateCustomerRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}
