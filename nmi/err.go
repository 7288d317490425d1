package nmi

import (
	"errors"

	"github.com/ezrec/nmi/translate"
)

var f = translate.From

var (
	// Delivery precondition errors
	ErrReentrant = errors.New(f("same-class nmi re-entrance unsupported"))
	ErrNoHandler = errors.New(f("no nmi handler active"))
	ErrStackFull = errors.New(f("nmi nesting stack full"))
)

type ErrClassInvalid string

func (ec ErrClassInvalid) Error() string {
	return f("'%v' is not an nmi class", string(ec))
}

type ErrCauseInvalid string

func (ec ErrCauseInvalid) Error() string {
	return f("'%v' is not an nmi cause", string(ec))
}

// ErrHandler indicates the handler in which an error was raised.
type ErrHandler struct {
	Slot Slot
	Err  error
}

func (err *ErrHandler) Error() string {
	return f("%v handler: %v", err.Slot, err.Err)
}

func (err *ErrHandler) Unwrap() error {
	return err.Err
}
