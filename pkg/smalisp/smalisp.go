// Package smalisp is the public facade over the interpreter: construct
// an Engine, optionally register foreign functions, and evaluate source
// text, mirroring the way the teacher's own pkg/dwscript wraps its
// interpreter behind a small options-configured Engine type.
package smalisp

import (
	"io"
	"os"
	"strings"

	"github.com/cwbudde/go-smalisp/internal/corelib"
	"github.com/cwbudde/go-smalisp/internal/lisp"
	"github.com/cwbudde/go-smalisp/internal/reader"
	"github.com/cwbudde/go-smalisp/internal/repl"
)

// Engine owns one top-level environment and its print/read/trace sinks.
// An Engine is not safe for concurrent use — the underlying interpreter
// is single-threaded by design (§5).
type Engine struct {
	env    lisp.Reference
	output io.Writer
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects the print primitive's output, equivalent to the
// CLI's -o flag.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithTraceSink configures the debug primitive group (exit, trace,
// no-trace, dump-stack) against w; omitting this option leaves the
// group unregistered (§4.10).
func WithTraceSink(w io.Writer) Option {
	return func(e *Engine) { corelib.SetTraceSink(e.env, w) }
}

// New builds a fresh Engine: a top-level environment seeded with the
// core primitive library, ready to evaluate forms.
func New(opts ...Option) *Engine {
	env := lisp.NewTopLevelStack()
	e := &Engine{env: env, output: os.Stdout}
	corelib.Register(env)
	for _, opt := range opts {
		opt(e)
	}
	corelib.SetPrintSink(e.output)
	return e
}

// RegisterFunction binds a Go closure into the top-level environment as
// a foreign function callable from evaluated source (register_core_lib's
// extension point, generalized for host embedding).
func (e *Engine) RegisterFunction(name string, fn lisp.ForeignFunc) {
	sym := lisp.MakeSymbol(name)
	val := lisp.MakeForeign(name, fn)
	lisp.Let(e.env, sym, val)
	lisp.Release(sym)
	lisp.Release(val)
}

// Result is the outcome of evaluating one source text: every top-level
// form's value, printed representation included for convenience.
type Result struct {
	// Values holds each top-level form's evaluated result, in order.
	Values []lisp.Reference
	// Printed is the read-compatible textual form of the last value, or
	// "()" if src contained no forms.
	Printed string
}

// Eval reads every form in src, evaluates each in turn against the
// engine's top-level environment, and runs one collector cycle between
// forms (§6). Every returned Reference is owned by the caller and must
// eventually be released with lisp.Release.
func (e *Engine) Eval(src string) *Result {
	rd := reader.New(strings.NewReader(src))
	var values []lisp.Reference

	for {
		form, err := rd.Read()
		if err == io.EOF {
			break
		}
		v := lisp.Eval(form, e.env)
		lisp.Release(form)
		values = append(values, v)
		// Each value stays a GC root until Eval returns, so the cycles
		// below never sweep a value the caller is about to receive.
		lisp.RegisterRoot(v)
		lisp.CollectGarbage()
	}

	last := lisp.Nil
	if len(values) > 0 {
		last = values[len(values)-1]
	}
	result := &Result{Values: values, Printed: lisp.Sprint(last)}
	for _, v := range values {
		lisp.UnregisterRoot(v)
	}
	return result
}

// Run drives a full read-eval-print-collect loop over in, writing each
// result to out, until in is exhausted or the exit primitive fires
// (§6). It is the engine used by cmd/smalisp.
func (e *Engine) Run(in io.Reader, out io.Writer, opts repl.Options) repl.Stats {
	return repl.Run(in, out, e.env, opts)
}

// Env exposes the engine's top-level environment reference, for callers
// that need to bind or look up symbols directly (get-env's host-side
// equivalent).
func (e *Engine) Env() lisp.Reference { return e.env }
