package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-smalisp/internal/diag"
	"github.com/cwbudde/go-smalisp/internal/lisp"
	"github.com/cwbudde/go-smalisp/internal/repl"
	"github.com/cwbudde/go-smalisp/pkg/smalisp"
)

var (
	outputPath    string
	traceFilePath string
	quiet         bool
	stats         bool
)

func runScript(_ *cobra.Command, args []string) error {
	return run(args)
}

// run is split out from the cobra RunE signature so it stays testable
// without constructing a *cobra.Command.
func run(args []string) error {
	in, closeIn, err := openInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "smalisp:", err)
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "smalisp:", err)
		return err
	}
	defer closeOut()

	traceSink, closeTrace, err := openTraceSink(traceFilePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "smalisp:", err)
		return err
	}
	defer closeTrace()

	lisp.ErrorSink = traceSink
	diag.SetSink(traceSink)

	opts := []smalisp.Option{smalisp.WithOutput(out)}
	if traceFilePath != "" {
		opts = append(opts, smalisp.WithTraceSink(traceSink))
	}
	engine := smalisp.New(opts...)

	runOpts := repl.Options{
		Interactive: len(args) == 0 && isTerminal(os.Stdin),
		Prompt:      "> ",
		Quiet:       quiet,
	}
	result := engine.Run(in, out, runOpts)

	if stats {
		fmt.Fprintf(traceSink, "symbol-eval-count: %d\n", result.SymbolEvalCount)
		fmt.Fprintf(traceSink, "stack-switch-count: %d\n", result.StackSwitchCount)
		fmt.Fprintf(traceSink, "live-object-count: %d\n", result.LiveObjectCount)
	}
	return nil
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot open %s", args[0])
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create %s", path)
	}
	return f, func() { f.Close() }, nil
}

func openTraceSink(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create %s", path)
	}
	return f, func() { f.Close() }, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
