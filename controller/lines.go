// Package controller models the NMI lines of the hosting interrupt
// controller: one pending bit per class, and a history of every line change.
package controller

import (
	"iter"
	"log"
	"slices"

	"github.com/ezrec/nmi/nmi"
)

// Edge is a single change request on an NMI line.
type Edge struct {
	Class   nmi.Class
	Pending bool
}

// Lines is the pending state of the UNMI and RNMI lines.
type Lines struct {
	Verbose bool // If set, enables verbose logging.

	pending [2]bool
	history []Edge
}

var _ nmi.Controller = (*Lines)(nil)

// SetNmi raises or clears the pending line for a class.
func (ln *Lines) SetNmi(class nmi.Class, pending bool) {
	if ln.Verbose {
		log.Printf("controller: %v pending %v -> %v", class, ln.pending[class], pending)
	}

	ln.pending[class] = pending
	ln.history = append(ln.history, Edge{Class: class, Pending: pending})
}

// Pending reports whether the class's line is pending.
func (ln *Lines) Pending(class nmi.Class) bool {
	return ln.pending[class]
}

// Edges iterates over all line changes since the last Reset, oldest first.
func (ln *Lines) Edges() iter.Seq[Edge] {
	return slices.Values(ln.history)
}

// Reset clears all lines and the history.
func (ln *Lines) Reset() {
	ln.pending = [2]bool{}
	ln.history = nil
}
