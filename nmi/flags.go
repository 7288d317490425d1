package nmi

import (
	"fmt"
)

// Flags records which handlers have begun executing.
// The zero value has no flags set.
type Flags struct {
	fired [2][2]bool
}

// Set marks the slot's handler as fired.
func (fl *Flags) Set(slot Slot) {
	fl.fired[slot.Class][slot.Cause] = true
}

// Clear unmarks a single slot.
func (fl *Flags) Clear(slot Slot) {
	fl.fired[slot.Class][slot.Cause] = false
}

// Fired reports whether the slot's handler has fired.
func (fl *Flags) Fired(slot Slot) bool {
	return fl.fired[slot.Class][slot.Cause]
}

// Reset clears all flags.
func (fl *Flags) Reset() {
	fl.fired = [2][2]bool{}
}

// String returns the flags as unmi_int/unmi_excp/rnmi_int/rnmi_excp.
func (fl *Flags) String() (text string) {
	names := []string{"unmi_int", "unmi_excp", "rnmi_int", "rnmi_excp"}
	n := 0
	for slot := range Slots() {
		if n > 0 {
			text += " "
		}
		text += fmt.Sprintf("%v=%v", names[n], fl.Fired(slot))
		n++
	}
	return
}
