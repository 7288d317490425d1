// Package scenario checks the NMI priority and nesting rules against the
// emulator.
//
// A Scenario installs hooks, asserts NMIs, and returns a verdict from the
// fired flags. The Runner executes scenarios in order on a freshly reset
// emulator and stops at the first failure. Additional scenarios may be
// written in Starlark and loaded with Load.
package scenario
