package engine

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a referenced record does not exist. Engines never
// silently default missing records; callers decide what a missing record
// means at the boundary.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// InvariantViolationError indicates malformed input that would otherwise
// produce Inf/NaN or corrupt derived state.
type InvariantViolationError struct {
	Reason string
}

func (e InvariantViolationError) Error() string {
	return "invariant violation: " + e.Reason
}

// InsufficientCoinsError is returned when a purchase exceeds the balance.
type InsufficientCoinsError struct {
	Price   int
	Balance int
}

func (e InsufficientCoinsError) Error() string {
	return fmt.Sprintf("not enough coins (price %d, balance %d)", e.Price, e.Balance)
}
