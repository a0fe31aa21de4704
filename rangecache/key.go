package rangecache

import "fmt"

// Key identifies an inclusive index range [Left, Right].
type Key struct {
	Left  int
	Right int
}

// NewKey returns the key for [left, right]. It panics if left > right.
func NewKey(left, right int) Key {
	if left > right {
		panic(fmt.Sprintf("rangecache: invalid range [%d, %d]", left, right))
	}
	return Key{Left: left, Right: right}
}

func (k Key) Valid() bool {
	return k.Left <= k.Right
}

// Contains reports whether index lies inside the range.
func (k Key) Contains(index int) bool {
	return k.Left <= index && index <= k.Right
}

func (k Key) String() string {
	return fmt.Sprintf("[%d, %d]", k.Left, k.Right)
}
