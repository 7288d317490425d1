package scenario

import (
	"io"
	"iter"
	"log"

	"github.com/ezrec/nmi/emulator"
	"github.com/ezrec/nmi/translate"
)

const banner = "======================================="

// Runner executes scenarios in order, stopping at the first failure.
type Runner struct {
	Verbose    bool      // If set, enables verbose logging.
	Incomplete bool      // If set, also runs scenarios marked Incomplete.
	Output     io.Writer // Console for headers, traces and the verdict.
}

func (r *Runner) printf(format string, args ...any) {
	if r.Output == nil {
		return
	}
	translate.Fprintf(r.Output, format, args...)
}

// Run executes each scenario on a freshly reset emulator. It returns the
// number of scenarios that passed, and an *ErrScenario for the first that
// did not. If every scenario was skipped, it returns ErrNoScenarios.
func (r *Runner) Run(scenarios iter.Seq[Scenario]) (passed int, err error) {
	emu := emulator.NewEmulator(r.Output)
	emu.Verbose = r.Verbose

	r.printf("NMI test program\n")

	index := 0
	for sc := range scenarios {
		if sc.Incomplete && !r.Incomplete {
			if r.Verbose {
				log.Printf("scenario: skip incomplete '%v'", sc.Title)
			}
			continue
		}

		index++
		emu.Reset()

		r.printf("%v\n", banner)
		r.printf("Test case %d: %v\n", index, sc.Title)
		r.printf("%v\n", banner)

		var ok bool
		ok, err = sc.Run(emu)
		if err == nil && !ok {
			err = ErrAssertion
		}

		if r.Verbose {
			log.Printf("scenario: %d: ok %v, flags %v, err %v", index, ok, &emu.Context.Flags, err)
		}

		if err != nil {
			r.printf("FAIL!!\n")
			err = &ErrScenario{Index: index, Title: sc.Title, Err: err}
			return
		}

		passed++
	}

	if index == 0 {
		r.printf("FAIL!!\n")
		err = ErrNoScenarios
		return
	}

	r.printf("All test cases PASS!!\n")

	return
}
