package nmi

import (
	"io"
	"log"

	"github.com/ezrec/nmi/translate"
)

// Controller is the interrupt controller that owns the NMI pending lines.
type Controller interface {
	SetNmi(class Class, pending bool)
}

// Returner is the handler-exit primitive (mnret). It restores the context
// saved in frame and re-arms NMI delivery. It cannot fail.
type Returner interface {
	Return(ctx *Context, frame Frame)
}

// Core is the NMI delivery and nesting state machine.
type Core struct {
	Verbose bool      // If set, enables verbose logging.
	Console io.Writer // Handler trace output, if not nil.

	Controller Controller // Pending lines, cleared by interrupt handlers.
	Returner   Returner   // Handler exit.
}

// NewCore creates a core attached to a controller and a return primitive.
func NewCore(controller Controller, returner Returner) (core *Core) {
	core = &Core{
		Controller: controller,
		Returner:   returner,
	}

	return
}

func (core *Core) printf(format string, args ...any) {
	if core.Console == nil {
		return
	}
	translate.Fprintf(core.Console, format, args...)
}

// Eligible decides whether an interrupt of class may be taken now.
//   - held is set if a higher ranked handler is active; nothing runs and the
//     pending line stays set.
//   - ErrReentrant is returned if a handler of the same class is active.
func (core *Core) Eligible(ctx *Context, class Class) (held bool, err error) {
	for _, frame := range ctx.Stack.Data {
		if frame.Slot.Class.Outranks(class) {
			held = true
			return
		}
	}

	if ctx.Stack.Active(class) {
		err = ErrReentrant
		return
	}

	return
}

// Deliver takes the class's interrupt cause, if the nesting state permits.
// The handler runs to completion before Deliver returns.
func (core *Core) Deliver(ctx *Context, class Class) (held bool, err error) {
	held, err = core.Eligible(ctx, class)
	if err != nil {
		if core.Verbose {
			log.Printf("nmi: %v refused in %v: %v", class, ctx.State(), err)
		}
		return
	}
	if held {
		if core.Verbose {
			log.Printf("nmi: %v held off in %v", class, ctx.State())
		}
		return
	}

	err = core.handle(ctx, Slot{Class: class, Cause: CAUSE_INTERRUPT})
	return
}

// Fault raises the exception cause of the innermost active handler's class.
func (core *Core) Fault(ctx *Context) (err error) {
	frame, ok := ctx.Stack.Peek()
	if !ok {
		err = ErrNoHandler
		return
	}

	err = core.handle(ctx, Slot{Class: frame.Slot.Class, Cause: CAUSE_EXCEPTION})
	return
}

// handle runs a handler body: save context, mark fired, run the hook,
// clear the pending line for interrupts, and return through the Returner.
func (core *Core) handle(ctx *Context, slot Slot) (err error) {
	if ctx.Stack.Full() {
		err = ErrStackFull
		return
	}

	frame := Frame{Slot: slot, Resume: ctx.Pc}
	ctx.Stack.Push(frame)
	ctx.Pc = slot.Vector()

	if core.Verbose {
		log.Printf("nmi: enter %v, resume 0x%08x", slot, frame.Resume)
	}

	core.printf("%v %v handler: enter\n", slot.Class, slot.Cause)
	ctx.Flags.Set(slot)

	err = ctx.Hooks.Invoke(slot)
	if err == nil {
		if slot.Cause == CAUSE_INTERRUPT {
			core.Controller.SetNmi(slot.Class, false)
		}
		core.printf("%v %v handler: return\n", slot.Class, slot.Cause)
	} else {
		err = &ErrHandler{Slot: slot, Err: err}
	}

	core.Returner.Return(ctx, frame)

	if core.Verbose {
		log.Printf("nmi: leave %v, state %v", slot, ctx.State())
	}

	return
}
