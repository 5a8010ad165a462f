// Package repl implements the top-level read-eval-print-collect loop
// (§6): read one form, evaluate it against the top-level environment,
// print its value unless running quietly, run exactly one collector
// cycle, and repeat until end of input or the exit primitive fires.
package repl

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-smalisp/internal/corelib"
	"github.com/cwbudde/go-smalisp/internal/lisp"
	"github.com/cwbudde/go-smalisp/internal/reader"
)

// Options configures a REPL run (§6 CLI flags).
type Options struct {
	// Prompt is written to Run's out writer before each read when
	// Interactive is true.
	Prompt string
	// Interactive enables the "> " prompt; non-interactive runs (a script
	// file, or a script piped on stdin) suppress it.
	Interactive bool
	// Quiet suppresses printing each top-level form's result (-q).
	Quiet bool
}

// Stats mirrors the original's end-of-run statistics dump: number of
// symbol lookups and number of stack switches performed over the run.
type Stats struct {
	SymbolEvalCount  int
	StackSwitchCount int
	LiveObjectCount  int
}

// Run reads forms from in, evaluating each against env and writing
// results to out, until in is exhausted or the exit primitive is
// invoked. It runs one garbage collection cycle between every top-level
// form, the cadence described in §6.
func Run(in io.Reader, out io.Writer, env lisp.Reference, opts Options) Stats {
	rd := reader.New(in)

	for !corelib.ExitRequested() {
		if opts.Interactive {
			fmt.Fprint(out, opts.Prompt)
		}

		form, err := rd.Read()
		if err == io.EOF {
			break
		}

		result := lisp.Eval(form, env)
		lisp.Release(form)

		if !opts.Quiet {
			lisp.Fprint(out, result)
			fmt.Fprintln(out)
		}
		lisp.Release(result)

		lisp.CollectGarbage()
	}

	return Stats{
		SymbolEvalCount:  lisp.SymbolEvalCount,
		StackSwitchCount: lisp.StackSwitchCount,
		LiveObjectCount:  lisp.LiveObjectCount(),
	}
}
