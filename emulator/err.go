package emulator

import (
	"github.com/ezrec/nmi/translate"
)

var f = translate.From

// ErrRuntime indicates the program counter and operation of a runtime error.
type ErrRuntime struct {
	Op  string
	Pc  uint32
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("%v at pc 0x%08x: %v", err.Op, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
