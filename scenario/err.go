package scenario

import (
	"errors"

	"github.com/ezrec/nmi/translate"
)

var f = translate.From

var (
	// Harness errors
	ErrAssertion   = errors.New(f("scenario assertion failed"))
	ErrNoScenarios = errors.New(f("no scenarios were run"))

	// Script errors
	ErrScript        = errors.New(f("scenario script"))
	ErrScriptOutside = errors.New(f("builtin used outside of a scenario"))
	ErrScriptEmpty   = errors.New(f("no scenarios defined"))
)

// ErrScenario indicates which scenario failed.
type ErrScenario struct {
	Index int
	Title string
	Err   error
}

func (err *ErrScenario) Error() string {
	return f("test case %d (%v): %v", err.Index, err.Title, err.Err)
}

func (err *ErrScenario) Unwrap() error {
	return err.Err
}
