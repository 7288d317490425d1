// Package nmi models the two-tier non-maskable interrupt facility of a
// microcontroller hart.
//
// There are two NMI classes. The Unrecoverable NMI (UNMI) outranks the
// Resumable NMI (RNMI): an UNMI may preempt a running RNMI handler, but an
// RNMI is held off while any UNMI handler is on the stack. Each class has an
// interrupt cause, raised by the interrupt controller, and an exception
// cause, raised by a faulting instruction executed inside its handler.
//
// All mutable state lives in a Context, which the Core mutates as handlers
// are entered and left. Delivery is synchronous: a permitted NMI runs its
// handler to completion before the call that raised it returns.
package nmi
