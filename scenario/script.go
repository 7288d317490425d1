package scenario

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nmi/emulator"
	"github.com/ezrec/nmi/nmi"
)

// Thread-local key of the emulator a script scenario runs against.
const localEmulator = "emulator"

// emulatorBuiltin is a script builtin that needs the running emulator.
type emulatorBuiltin func(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func withEmulator(name string, fn emulatorBuiltin) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		emu, ok := thread.Local(localEmulator).(*emulator.Emulator)
		if !ok {
			return nil, fmt.Errorf("%s: %w", b.Name(), ErrScriptOutside)
		}
		return fn(emu, thread, b, args, kwargs)
	})
}

// unpackSlot unpacks a class and an optional cause, INTERRUPT by default.
func unpackSlot(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (slot nmi.Slot, err error) {
	var cls string
	cause := nmi.CAUSE_INTERRUPT.String()
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "cls", &cls, "cause?", &cause)
	if err != nil {
		return
	}

	slot.Class, err = nmi.ParseClass(cls)
	if err != nil {
		return
	}

	slot.Cause, err = nmi.ParseCause(cause)
	return
}

func unpackClass(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (class nmi.Class, err error) {
	var cls string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "cls", &cls)
	if err != nil {
		return
	}

	class, err = nmi.ParseClass(cls)
	return
}

func builtinTrigger(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	class, err := unpackClass(b, args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.None, emu.Assert(class)
}

func builtinFault(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.None, emu.Fault()
}

func builtinHook(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var cls, cause string
	var fn starlark.Value
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "cls", &cls, "cause", &cause, "fn", &fn)
	if err != nil {
		return nil, err
	}

	var slot nmi.Slot
	slot.Class, err = nmi.ParseClass(cls)
	if err != nil {
		return nil, err
	}
	slot.Cause, err = nmi.ParseCause(cause)
	if err != nil {
		return nil, err
	}

	switch fn := fn.(type) {
	case starlark.NoneType:
		emu.Context.Hooks.Clear(slot)
	case starlark.Callable:
		emu.Context.Hooks.Set(slot, nmi.HookFunc(func() error {
			_, err := starlark.Call(thread, fn, nil, nil)
			return err
		}))
	default:
		return nil, fmt.Errorf("%s: fn must be callable or None, not %s", b.Name(), fn.Type())
	}

	return starlark.None, nil
}

func builtinFired(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	slot, err := unpackSlot(b, args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(emu.Context.Flags.Fired(slot)), nil
}

func builtinClear(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	slot, err := unpackSlot(b, args, kwargs)
	if err != nil {
		return nil, err
	}

	emu.Context.Flags.Clear(slot)
	return starlark.None, nil
}

func builtinPending(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	class, err := unpackClass(b, args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(emu.Lines.Pending(class)), nil
}

func builtinState(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.String(emu.Context.State().String()), nil
}

func builtinPc(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint64(uint64(emu.Context.Pc)), nil
}

func builtinDisableInterrupts(emu *emulator.Emulator, thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	emu.DisableInterrupts()
	return starlark.None, nil
}

// predeclared returns the script environment, with scenario registration
// appending to scenarios.
func predeclared(scenarios *[]Scenario) starlark.StringDict {
	pred := starlark.StringDict{
		"UNMI":      starlark.String(nmi.CLASS_UNMI.String()),
		"RNMI":      starlark.String(nmi.CLASS_RNMI.String()),
		"INTERRUPT": starlark.String(nmi.CAUSE_INTERRUPT.String()),
		"EXCEPTION": starlark.String(nmi.CAUSE_EXCEPTION.String()),

		"trigger":            withEmulator("trigger", builtinTrigger),
		"fault":              withEmulator("fault", builtinFault),
		"hook":               withEmulator("hook", builtinHook),
		"fired":              withEmulator("fired", builtinFired),
		"clear":              withEmulator("clear", builtinClear),
		"pending":            withEmulator("pending", builtinPending),
		"state":              withEmulator("state", builtinState),
		"pc":                 withEmulator("pc", builtinPc),
		"disable_interrupts": withEmulator("disable_interrupts", builtinDisableInterrupts),
	}

	for key, value := range emulator.Defines() {
		pred[key] = starlark.MakeUint64(uint64(value))
	}

	pred["scenario"] = starlark.NewBuiltin("scenario", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var title string
		var fn starlark.Callable
		var incomplete bool
		err := starlark.UnpackArgs(b.Name(), args, kwargs, "title", &title, "fn", &fn, "incomplete?", &incomplete)
		if err != nil {
			return nil, err
		}

		*scenarios = append(*scenarios, Scenario{
			Title:      title,
			Incomplete: incomplete,
			Run:        scriptRun(title, fn),
		})
		return starlark.None, nil
	})

	return pred
}

// scriptRun calls a script's scenario function; its truth is the verdict.
func scriptRun(title string, fn starlark.Callable) func(emu *emulator.Emulator) (bool, error) {
	return func(emu *emulator.Emulator) (ok bool, err error) {
		thread := &starlark.Thread{
			Name: title,
			Print: func(_ *starlark.Thread, msg string) {
				if emu.Console != nil {
					fmt.Fprintln(emu.Console, msg)
				}
			},
		}
		thread.SetLocal(localEmulator, emu)

		rc, err := starlark.Call(thread, fn, nil, nil)
		if err != nil {
			err = errors.Join(ErrScript, err)
			return
		}

		ok = bool(rc.Truth())
		return
	}
}

// Load executes a scenario script and returns the scenarios it registers,
// in registration order. If src is nil the script is read from filename.
func Load(filename string, src any) (scenarios []Scenario, err error) {
	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared(&scenarios))
	if err != nil {
		err = errors.Join(ErrScript, err)
		return
	}

	if len(scenarios) == 0 {
		err = errors.Join(ErrScript, ErrScriptEmpty)
	}

	return
}
