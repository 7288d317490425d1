// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nmi/controller"
	"github.com/ezrec/nmi/internal"
	"github.com/ezrec/nmi/nmi"
	"github.com/ezrec/nmi/translate"
)

var _emulator_defines = map[string]uint32{
	"STACK_LIMIT": nmi.STACK_LIMIT,
}

// Emulator state. NMI core + controller lines + return primitive.
type Emulator struct {
	Verbose   bool             // If set, enables verbose logging.
	*nmi.Core                  // Reference to the NMI state machine.
	Lines     controller.Lines // NMI lines of the interrupt controller.
	Mnret     Mnret            // Handler return primitive.

	Context *nmi.Context // Current run state.
}

// NewEmulator creates a new emulator, writing handler traces to console.
func NewEmulator(console io.Writer) (emu *Emulator) {
	emu = &Emulator{}

	emu.Core = nmi.NewCore(&emu.Lines, &emu.Mnret)
	emu.Core.Console = console

	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines.
func Defines() iter.Seq2[string, uint32] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		nmi.Defines(),
	)
}

// Reset the emulator: a fresh context, clear lines, zero statistics.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.Core.Verbose = emu.Verbose
	emu.Lines.Verbose = emu.Verbose
	emu.Mnret.Verbose = emu.Verbose

	emu.Context = nmi.NewContext()
	emu.Lines.Reset()
	emu.Mnret.Returns = 0
}

func (emu *Emulator) printf(format string, args ...any) {
	if emu.Console == nil {
		return
	}
	translate.Fprintf(emu.Console, format, args...)
}

// DisableInterrupts clears the global interrupt enable. NMIs are
// unaffected.
func (emu *Emulator) DisableInterrupts() {
	emu.Context.InterruptEnable = false
}

// Assert raises the class's NMI line and delivers it if the nesting state
// permits. A delivered handler has returned by the time Assert does.
func (emu *Emulator) Assert(class nmi.Class) (err error) {
	pc := emu.Context.Pc
	emu.Lines.SetNmi(class, true)
	_, err = emu.Core.Deliver(emu.Context, class)
	if err != nil {
		err = &ErrRuntime{Op: fmt.Sprintf("assert %v", class), Pc: pc, Err: err}
	}

	return
}

// Fault raises the exception cause of the innermost active handler, as an
// illegal instruction executed inside it would.
func (emu *Emulator) Fault() (err error) {
	pc := emu.Context.Pc
	err = emu.Core.Fault(emu.Context)
	if err != nil {
		err = &ErrRuntime{Op: "fault", Pc: pc, Err: err}
	}

	return
}

// Fired reports whether the class's handler for cause has fired.
func (emu *Emulator) Fired(class nmi.Class, cause nmi.Cause) bool {
	return emu.Context.Fired(class, cause)
}

// Hook installs a hook for the class's handler of cause.
func (emu *Emulator) Hook(class nmi.Class, cause nmi.Cause, hook nmi.Hook) {
	emu.Context.SetHook(class, cause, hook)
}

// Trigger returns a hook that asserts class.
func (emu *Emulator) Trigger(class nmi.Class) nmi.Hook {
	return nmi.HookFunc(func() error {
		emu.printf("Try to trigger %v...\n", class)
		return emu.Assert(class)
	})
}

// FaultHook returns a hook that executes an illegal instruction.
func (emu *Emulator) FaultHook() nmi.Hook {
	return nmi.HookFunc(func() error {
		emu.printf("Try to trigger illegal instruction exception...\n")
		return emu.Fault()
	})
}
