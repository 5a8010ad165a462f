// Package diag renders reader diagnostics with source context, modeled
// directly on the teacher's internal/errors package: a position, the
// offending source line, and a caret. Unlike the teacher's compiler
// errors these are never fatal — Report writes the diagnostic and
// returns nothing; the reader always continues with the next form.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Position is a 1-based line/column pair, the reader's equivalent of
// the teacher's lexer.Position.
type Position struct {
	Line   int
	Column int
}

// Sink is where diagnostics are written. It defaults to stderr and is
// redirected by the CLI to the configured trace file (§6).
var Sink io.Writer = os.Stderr

// SetSink redirects future diagnostics to w.
func SetSink(w io.Writer) { Sink = w }

// Report writes message with a "line:column" header and, when source is
// non-empty, the offending line followed by a caret under pos.Column.
func Report(pos Position, message, source string) {
	fmt.Fprintf(Sink, "! reader error at %d:%d: %s\n", pos.Line, pos.Column, message)

	line := sourceLine(source, pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(Sink, "    %s\n", line)
	col := pos.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(Sink, "    %s^\n", strings.Repeat(" ", col-1))
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
