package services

import (
	"errors"
	"fmt"

	"bolucompras/internal/models"
)

// Validation errors, surfaced as 400 responses.
var (
	ErrNameRequired       = errors.New("product name is required and cannot be empty")
	ErrQuantityNegative   = errors.New("quantity cannot be negative")
	ErrPriorityOutOfRange = errors.New("priority must be between 1 and 5")
	ErrInvalidID          = errors.New("malformed product id")
)

// ConflictError is returned when a create collides with an existing product
// under normalized-name equality. It carries the existing record so the
// caller can offer to increment it instead of creating a duplicate.
type ConflictError struct {
	Existing *models.Product
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product %q already exists", e.Existing.Name)
}

// AsConflict unwraps err into a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
