package chain

import (
	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyChain      = errors.New("chain is empty")
)

func indexOutOfRange(index int, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, size)
}
