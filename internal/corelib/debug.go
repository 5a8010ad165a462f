package corelib

import (
	"io"

	"github.com/cwbudde/go-smalisp/internal/lisp"
)

// traceSink receives dump-stack output and gates whether the debug
// primitive group (exit, trace, no-trace, dump-stack) is registered at
// all, mirroring the original's guard on trace_fl (§4.10).
var traceSink io.Writer

// traceLevel tracks the current tracer force level: 0 means unforced,
// positive means forced-on (trace), negative means forced-off
// (no-trace). trace/no-trace nest by saving and restoring this value.
var traceLevel int

// exitRequested is set by the exit primitive; the REPL checks it after
// every top-level form and stops once it is true.
var exitRequested bool

// SetTraceSink configures the debug primitive group's output sink and,
// when non-nil, registers the group into env. A nil sink leaves the
// group unregistered, matching the original CLI's trace_fl guard.
func SetTraceSink(env lisp.Reference, w io.Writer) {
	traceSink = w
	if w != nil {
		registerDebug(env)
	}
}

// ExitRequested reports whether the exit primitive has been called; the
// REPL uses this to stop its loop.
func ExitRequested() bool { return exitRequested }

// ResetExitRequested clears the exit flag, used by test harnesses that
// run multiple top-level programs against one process.
func ResetExitRequested() { exitRequested = false }

func registerDebug(env lisp.Reference) {
	def(env, "exit", fnExit)
	def(env, "trace", fnTrace)
	def(env, "no-trace", fnNoTrace)
	def(env, "dump-stack", fnDumpStack)
}

func fnExit(_, _ lisp.Reference) lisp.Reference {
	exitRequested = true
	return lisp.Nil
}

// fnTrace runs a do-style body with tracing forced on, restoring the
// previous force level afterward (slfe_trace).
func fnTrace(args, env lisp.Reference) lisp.Reference {
	if traceSink == nil {
		return fnDo(args, env)
	}
	saved := traceLevel
	traceLevel = 1
	result := fnDo(args, env)
	traceLevel = saved
	return result
}

// fnNoTrace is trace's opposite: forces tracing off for the body
// (slfe_no_trace).
func fnNoTrace(args, env lisp.Reference) lisp.Reference {
	if traceSink == nil {
		return fnDo(args, env)
	}
	saved := traceLevel
	traceLevel = -1
	result := fnDo(args, env)
	traceLevel = saved
	return result
}

// fnDumpStack writes a human-readable dump of a stack (the current one
// if no argument given) to the trace sink (slfe_dump_stack).
func fnDumpStack(args, env lisp.Reference) lisp.Reference {
	if traceSink == nil {
		return lisp.Nil
	}

	target := nthRaw(args, 0)
	defer lisp.Release(target)

	var stackRef lisp.Reference
	if lisp.IsNil(target) {
		stackRef = lisp.CurrentStack()
	} else {
		stackRef = lisp.Eval(target, env)
		defer lisp.Release(stackRef)
	}

	if !lisp.IsStack(stackRef) {
		lisp.ReportError("dump-stack called with a value that is not a stack")
		return lisp.Nil
	}
	lisp.StackOf(stackRef).DebugPrint(traceSink)
	return lisp.Nil
}
