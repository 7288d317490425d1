package scenario

import (
	"github.com/ezrec/nmi/emulator"
	"github.com/ezrec/nmi/nmi"
)

// Scenario is a single check run against a freshly reset emulator.
type Scenario struct {
	Title      string // Printed in the test case header.
	Incomplete bool   // Known incomplete; only run on request.

	// Run exercises the emulator and returns the verdict.
	Run func(emu *emulator.Emulator) (ok bool, err error)
}

// Builtin returns the built-in scenarios, in execution order.
func Builtin() []Scenario {
	return []Scenario{
		{
			Title: "UNMI interrupt is taken from all privilege modes whether or not interrupts are enabled.",
			Run:   unmiUnmaskable,
		},
		{
			Title: "RNMI interrupt is taken from all privilege modes whether or not interrupts are enabled.",
			Run:   rnmiUnmaskable,
		},
		{
			Title: "UNMI interrupt is taken within an RNMI handler.",
			Run:   unmiWithinRnmi,
		},
		{
			Title: "RNMI interrupt is not taken within a UNMI handler.",
			Run:   rnmiNotWithinUnmi,
		},
		{
			Title: "mnret executed in an UNMI handler re-enables other interrupts including UNMI and RNMI.",
			Run:   unmiReturnReArms,
		},
		{
			Title: "mnret executed in an RNMI handler re-enables other interrupts including UNMI and RNMI.",
			Run:   rnmiReturnReArms,
		},
		{
			// The exception hook wiring of this check is unresolved.
			Title:      "Exceptions in UNMI handler should be taken.",
			Incomplete: true,
			Run:        unmiException,
		},
	}
}

func unmiUnmaskable(emu *emulator.Emulator) (ok bool, err error) {
	emu.DisableInterrupts()

	err = emu.Assert(nmi.CLASS_UNMI)
	ok = emu.Fired(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT)
	return
}

func rnmiUnmaskable(emu *emulator.Emulator) (ok bool, err error) {
	emu.DisableInterrupts()

	err = emu.Assert(nmi.CLASS_RNMI)
	ok = emu.Fired(nmi.CLASS_RNMI, nmi.CAUSE_INTERRUPT)
	return
}

func unmiWithinRnmi(emu *emulator.Emulator) (ok bool, err error) {
	emu.Hook(nmi.CLASS_RNMI, nmi.CAUSE_INTERRUPT, emu.Trigger(nmi.CLASS_UNMI))

	err = emu.Assert(nmi.CLASS_RNMI)
	ok = emu.Fired(nmi.CLASS_RNMI, nmi.CAUSE_INTERRUPT) &&
		emu.Fired(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT)
	return
}

func rnmiNotWithinUnmi(emu *emulator.Emulator) (ok bool, err error) {
	emu.Hook(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT, emu.Trigger(nmi.CLASS_RNMI))

	err = emu.Assert(nmi.CLASS_UNMI)
	ok = emu.Fired(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT) &&
		!emu.Fired(nmi.CLASS_RNMI, nmi.CAUSE_INTERRUPT)
	return
}

// reassert asserts class, checks that it fired, clears only its flag, then
// asserts every class in again. All of them must fire.
func reassert(emu *emulator.Emulator, class nmi.Class, again ...nmi.Class) (ok bool, err error) {
	err = emu.Assert(class)
	if err != nil || !emu.Fired(class, nmi.CAUSE_INTERRUPT) {
		return
	}

	emu.Context.Flags.Clear(nmi.Slot{Class: class, Cause: nmi.CAUSE_INTERRUPT})

	ok = true
	for _, next := range again {
		err = emu.Assert(next)
		if err != nil {
			ok = false
			return
		}
		ok = ok && emu.Fired(next, nmi.CAUSE_INTERRUPT)
	}
	return
}

func unmiReturnReArms(emu *emulator.Emulator) (ok bool, err error) {
	return reassert(emu, nmi.CLASS_UNMI, nmi.CLASS_UNMI, nmi.CLASS_RNMI)
}

func rnmiReturnReArms(emu *emulator.Emulator) (ok bool, err error) {
	return reassert(emu, nmi.CLASS_RNMI, nmi.CLASS_RNMI, nmi.CLASS_UNMI)
}

func unmiException(emu *emulator.Emulator) (ok bool, err error) {
	emu.Hook(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT, emu.FaultHook())

	err = emu.Assert(nmi.CLASS_UNMI)
	ok = emu.Fired(nmi.CLASS_UNMI, nmi.CAUSE_INTERRUPT) &&
		emu.Fired(nmi.CLASS_UNMI, nmi.CAUSE_EXCEPTION)
	return
}
