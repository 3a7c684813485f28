package stats

import (
	"errors"
	"fmt"
)

// ErrNoValues is returned when a reducer is applied to an empty sequence.
var ErrNoValues = errors.New("no values")

// ErrDomain is returned when a reducer is mathematically undefined for the
// given input, such as a negative base under a fractional power.
type ErrDomain struct {
	Op     string
	Reason string
}

func (e *ErrDomain) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ErrLengthMismatch is returned when values and weights differ in length.
type ErrLengthMismatch struct {
	Values  int
	Weights int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d values, %d weights", e.Values, e.Weights)
}
