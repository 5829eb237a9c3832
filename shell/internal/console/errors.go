package console

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownCommand = errors.New("unknown command, type 'help' for available commands")
	ErrUsage          = errors.New("wrong number of arguments")
)

func usage(syntax string) error {
	return errors.Wrapf(ErrUsage, "usage: %s", syntax)
}
