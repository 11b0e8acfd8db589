package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidParams indicates a sampling count that would divide by zero.
var ErrInvalidParams = errors.New("geometry: invalid sampling parameters")

// ParamError names the offending field of a rejected Params value.
type ParamError struct {
	Field string
	Value int
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s must be positive, got %d", ErrInvalidParams, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
