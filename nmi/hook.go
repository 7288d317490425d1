package nmi

// Hook is a sub-handler invoked from inside a handler body.
type Hook interface {
	Call() error
}

// HookNone is the empty hook.
type HookNone struct{}

func (HookNone) Call() error {
	return nil
}

// HookFunc adapts a function to a Hook.
type HookFunc func() error

func (hf HookFunc) Call() error {
	return hf()
}

// Table holds one Hook per slot. Hooks stay installed after they run.
type Table struct {
	hook [2][2]Hook
}

// Set installs a hook for a slot, replacing any prior hook.
// A nil hook is stored as HookNone.
func (tb *Table) Set(slot Slot, hook Hook) {
	if hook == nil {
		hook = HookNone{}
	}
	tb.hook[slot.Class][slot.Cause] = hook
}

// Clear removes the hook for a slot.
func (tb *Table) Clear(slot Slot) {
	tb.hook[slot.Class][slot.Cause] = HookNone{}
}

// Get returns the hook for a slot.
func (tb *Table) Get(slot Slot) (hook Hook) {
	hook = tb.hook[slot.Class][slot.Cause]
	if hook == nil {
		hook = HookNone{}
	}
	return
}

// Invoke runs the hook installed for a slot.
func (tb *Table) Invoke(slot Slot) error {
	return tb.Get(slot).Call()
}

// Reset removes all hooks.
func (tb *Table) Reset() {
	for slot := range Slots() {
		tb.Clear(slot)
	}
}
