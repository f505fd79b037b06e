package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when the table or queue storage cannot be reserved.
	ErrAllocation = errors.New("engine: allocation failed")

	// ErrInvalidArgument is returned when a run parameter is invalid.
	ErrInvalidArgument = errors.New("invalid argument")
)

// AllocationError reports a reservation that did not fit the memory budget.
type AllocationError struct {
	Bytes int64 // bytes requested for table and queue
	Limit int64 // configured budget
	cause error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot reserve %d bytes (limit %d): %v", e.Bytes, e.Limit, e.cause)
}

func (e *AllocationError) Unwrap() []error { return []error{ErrAllocation, e.cause} }
