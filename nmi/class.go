package nmi

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Class is an NMI class.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_UNMI = Class(0) // UNMI
	CLASS_RNMI = Class(1) // RNMI
)

// Cause distinguishes the interrupt and exception entry of a class.
type Cause int

//go:generate go tool stringer -linecomment -type=Cause
const (
	CAUSE_INTERRUPT = Cause(0) // interrupt
	CAUSE_EXCEPTION = Cause(1) // exception
)

// State is the handler currently executing on the hart.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_IDLE        = State(0) // idle
	STATE_UNMI_ACTIVE = State(1) // unmi-active
	STATE_RNMI_ACTIVE = State(2) // rnmi-active
)

// Handler vectors. Pc is set to the slot's vector on handler entry.
const (
	PC_ENTRY           = uint32(0x2000_0000) // Pc of the scenario code.
	VEC_UNMI_INTERRUPT = uint32(0x8000_0000)
	VEC_UNMI_EXCEPTION = uint32(0x8000_0100)
	VEC_RNMI_INTERRUPT = uint32(0x8000_0200)
	VEC_RNMI_EXCEPTION = uint32(0x8000_0300)
)

var _nmi_defines = map[string]uint32{
	"PC_ENTRY":           PC_ENTRY,
	"VEC_UNMI_INTERRUPT": VEC_UNMI_INTERRUPT,
	"VEC_UNMI_EXCEPTION": VEC_UNMI_EXCEPTION,
	"VEC_RNMI_INTERRUPT": VEC_RNMI_INTERRUPT,
	"VEC_RNMI_EXCEPTION": VEC_RNMI_EXCEPTION,
}

// Defines returns an iterator over the named vector addresses.
func Defines() iter.Seq2[string, uint32] {
	return maps.All(_nmi_defines)
}

// Outranks reports whether class may preempt a handler of class other.
func (class Class) Outranks(other Class) bool {
	return class == CLASS_UNMI && other == CLASS_RNMI
}

// ParseClass parses a class name, ignoring case.
func ParseClass(name string) (class Class, err error) {
	switch strings.ToUpper(name) {
	case CLASS_UNMI.String():
		class = CLASS_UNMI
	case CLASS_RNMI.String():
		class = CLASS_RNMI
	default:
		err = ErrClassInvalid(name)
	}
	return
}

// ParseCause parses a cause name, ignoring case.
func ParseCause(name string) (cause Cause, err error) {
	switch strings.ToLower(name) {
	case CAUSE_INTERRUPT.String():
		cause = CAUSE_INTERRUPT
	case CAUSE_EXCEPTION.String():
		cause = CAUSE_EXCEPTION
	default:
		err = ErrCauseInvalid(name)
	}
	return
}

// Slot addresses one handler: a class and one of its causes.
type Slot struct {
	Class Class
	Cause Cause
}

// Slots iterates over all four slots: unmi interrupt, unmi exception,
// rnmi interrupt, rnmi exception.
func Slots() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for _, class := range []Class{CLASS_UNMI, CLASS_RNMI} {
			for _, cause := range []Cause{CAUSE_INTERRUPT, CAUSE_EXCEPTION} {
				if !yield(Slot{Class: class, Cause: cause}) {
					return
				}
			}
		}
	}
}

// Vector returns the handler entry address of the slot.
func (slot Slot) Vector() (vec uint32) {
	switch slot {
	case Slot{CLASS_UNMI, CAUSE_INTERRUPT}:
		vec = VEC_UNMI_INTERRUPT
	case Slot{CLASS_UNMI, CAUSE_EXCEPTION}:
		vec = VEC_UNMI_EXCEPTION
	case Slot{CLASS_RNMI, CAUSE_INTERRUPT}:
		vec = VEC_RNMI_INTERRUPT
	case Slot{CLASS_RNMI, CAUSE_EXCEPTION}:
		vec = VEC_RNMI_EXCEPTION
	default:
		panic(fmt.Sprintf("nmi: no vector for %v", slot))
	}
	return
}

func (slot Slot) String() string {
	return fmt.Sprintf("%v %v", slot.Class, slot.Cause)
}
