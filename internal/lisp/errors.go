package lisp

import (
	"fmt"
	"io"
	"os"
)

// ErrorSink is where evaluator-level diagnostics (unbound symbol, type
// errors, callable errors, resource errors — §7) are written. It
// defaults to stderr, like the original's LOG_ERROR macro, and is
// redirected by the CLI to the configured trace file (§6).
var ErrorSink io.Writer = os.Stderr

// ReportError logs msg and returns nothing: every error category in §7 is
// non-fatal by design, so callers always continue by yielding Nil from
// the failing operation rather than propagating an error value.
func ReportError(msg string) {
	fmt.Fprintf(ErrorSink, "! error: %s\n", msg)
}
