// Package apperr defines the error taxonomy shared by all modules. Services
// wrap these sentinels with entity context so callers and HTTP handlers can
// branch on the failure kind with errors.Is instead of matching message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyPaid       = errors.New("payment already completed")
	ErrPartialCompletion = errors.New("payment recorded but order completion failed")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("already exists")
)

// Error carries which entity and record an invariant failed on.
type Error struct {
	kind   error
	Entity string
	ID     string
	msg    string
}

func (e *Error) Error() string {
	switch {
	case e.msg != "" && e.ID != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.msg)
	case e.msg != "":
		return fmt.Sprintf("%s: %s", e.Entity, e.msg)
	case e.ID != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.kind.Error())
	default:
		return fmt.Sprintf("%s: %s", e.Entity, e.kind.Error())
	}
}

func (e *Error) Unwrap() error { return e.kind }

func NotFound(entity, id string) error {
	return &Error{kind: ErrNotFound, Entity: entity, ID: id}
}

func InvalidTransition(entity, id, detail string) error {
	return &Error{kind: ErrInvalidTransition, Entity: entity, ID: id, msg: detail}
}

func InsufficientStock(productID string, requested, available int) error {
	return &Error{
		kind:   ErrInsufficientStock,
		Entity: "product",
		ID:     productID,
		msg:    fmt.Sprintf("insufficient stock: requested %d, available %d", requested, available),
	}
}

func AlreadyPaid(orderID string) error {
	return &Error{kind: ErrAlreadyPaid, Entity: "order", ID: orderID}
}

func PartialCompletion(orderID string, cause error) error {
	return &Error{
		kind:   ErrPartialCompletion,
		Entity: "order",
		ID:     orderID,
		msg:    fmt.Sprintf("payment marked PAID but order completion failed: %v", cause),
	}
}

func Validation(entity, msg string) error {
	return &Error{kind: ErrValidation, Entity: entity, msg: msg}
}

func Conflict(entity, detail string) error {
	return &Error{kind: ErrConflict, Entity: entity, msg: detail}
}

// HTTPStatus maps a taxonomy error to a response code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
