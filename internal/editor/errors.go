package editor

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveDragSession = errors.New("no active drag session")
	ErrStaleDragSession    = errors.New("stale drag session")
)

// IndexError reports an out-of-range index (InvalidIndex). Callers recover by no-op.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func IsInvalidIndex(err error) bool {
	var ie IndexError
	return errors.As(err, &ie)
}
