package rangesum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when left > right.
	ErrInvalidRange = errors.New("invalid range")

	// ErrIndexOutOfRange is wrapped by IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Index: index, Len: n}
	}
	return nil
}

func checkRange(left, right, n int) error {
	if left > right {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, left, right)
	}
	if err := checkIndex(left, n); err != nil {
		return err
	}
	return checkIndex(right, n)
}
