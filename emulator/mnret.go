package emulator

import (
	"log"

	"github.com/ezrec/nmi/nmi"
)

// Mnret is the platform's NMI return: it restores the context saved on
// handler entry and re-arms NMI delivery.
//
// Delivery eligibility is derived from the nesting stack, so popping the
// frame is the re-arm.
type Mnret struct {
	Verbose bool // If set, enables verbose logging.
	Returns int  // Number of handler returns since reset.
}

var _ nmi.Returner = (*Mnret)(nil)

// Return pops frame from the nesting stack and resumes at its saved Pc.
// The frame must be the innermost one.
func (mr *Mnret) Return(ctx *nmi.Context, frame nmi.Frame) {
	popped, ok := ctx.Stack.Pop()
	if !ok || popped != frame {
		panic(f("mnret: frame %v is not innermost", frame.Slot))
	}

	ctx.Pc = frame.Resume
	mr.Returns++

	if mr.Verbose {
		log.Printf("mnret: %v -> 0x%08x, state %v", frame.Slot, ctx.Pc, ctx.State())
	}
}
