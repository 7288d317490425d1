package nmi

// Context is the per-run state of the hart: fired flags, installed hooks,
// and the handler nesting stack. Resetting a run means constructing a new
// Context. A Context is not safe for concurrent use.
type Context struct {
	Flags Flags // Fired handler flags.
	Hooks Table // Sub-handler hooks.
	Stack Stack // Handler nesting stack.

	Pc              uint32 // Simulated program counter.
	InterruptEnable bool   // Global interrupt enable; NMIs ignore it.
}

// NewContext creates a context with no flags, no hooks, and no handler
// active, executing at PC_ENTRY with interrupts enabled.
func NewContext() (ctx *Context) {
	ctx = &Context{
		Pc:              PC_ENTRY,
		InterruptEnable: true,
	}
	ctx.Hooks.Reset()

	return
}

// State returns the class of the innermost active handler.
func (ctx *Context) State() (state State) {
	frame, ok := ctx.Stack.Peek()
	if !ok {
		return STATE_IDLE
	}

	switch frame.Slot.Class {
	case CLASS_UNMI:
		state = STATE_UNMI_ACTIVE
	case CLASS_RNMI:
		state = STATE_RNMI_ACTIVE
	}

	return
}

// Fired reports whether the class's handler for cause has fired.
func (ctx *Context) Fired(class Class, cause Cause) bool {
	return ctx.Flags.Fired(Slot{Class: class, Cause: cause})
}

// SetHook installs a hook for the class's handler of cause.
func (ctx *Context) SetHook(class Class, cause Cause, hook Hook) {
	ctx.Hooks.Set(Slot{Class: class, Cause: cause}, hook)
}
