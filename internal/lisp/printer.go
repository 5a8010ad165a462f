package lisp

import (
	"io"
	"strings"
)

// print1 writes r's read-compatible textual form to w, per §6. It is the
// single entry point every Print trait and every compound Print
// implementation (cons, closure) calls on its children, so that nil
// always renders consistently regardless of where it is encountered.
func print1(r Reference, w io.Writer) {
	if IsNil(r) {
		io.WriteString(w, "()")
		return
	}
	if r.Traits.Print == nil {
		io.WriteString(w, "#<unprintable>")
		return
	}
	r.Traits.Print(r, w)
}

// Fprint writes r's read-compatible textual form to w.
func Fprint(w io.Writer, r Reference) { print1(r, w) }

// Sprint returns r's read-compatible textual form as a string.
func Sprint(r Reference) string {
	var b strings.Builder
	print1(r, &b)
	return b.String()
}
