// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"iter"
	"log"
	"os"
	"slices"

	"github.com/ezrec/nmi/internal"
	"github.com/ezrec/nmi/scenario"
)

// run executes the built-in scenarios followed by those in the scripts.
func run(output io.Writer, verbose bool, incomplete bool, scripts ...string) (err error) {
	seqs := []iter.Seq[scenario.Scenario]{slices.Values(scenario.Builtin())}

	for _, script := range scripts {
		var loaded []scenario.Scenario
		loaded, err = scenario.Load(script, nil)
		if err != nil {
			return
		}
		seqs = append(seqs, slices.Values(loaded))
	}

	runner := &scenario.Runner{
		Verbose:    verbose,
		Incomplete: incomplete,
		Output:     output,
	}

	_, err = runner.Run(internal.IterSeqConcat(seqs...))
	return
}

// report logs the reason for a failed run, and returns the exit code.
func report(logger *log.Logger, err error) int {
	if err == nil {
		return 0
	}

	logger.Printf("%v: %v", os.Args[0], err)
	return 1
}

func main() {
	var script string
	var all bool
	var verbose bool

	flag.StringVar(&script, "s", "", ".star scenario script to run after the built-in scenarios")
	flag.BoolVar(&all, "all", false, "Also run scenarios marked incomplete")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var scripts []string
	if len(script) != 0 {
		scripts = append(scripts, script)
	}

	err := run(os.Stdout, verbose, all, scripts...)
	os.Exit(report(log.Default(), err))
}
