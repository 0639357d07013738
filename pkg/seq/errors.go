package seq

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates an index outside [0, Len()).
var ErrOutOfBounds = errors.New("index out of bounds")

// IndexError records the failed operation and the offending index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of bounds for length %d", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfBounds
}
