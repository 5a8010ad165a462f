package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var realTraits = &Traits{
	Print:    realPrint,
	TypeName: func(Reference) Reference { return MakeSymbol("real") },
	Eq:       realEq,
	Eql:      realEq,
}

// realPrint mirrors the original's fprintf(to, "%lf", ...): always emit a
// decimal point, so that read(print(v)) parses back as a real rather than
// (if the value happens to be integral) silently becoming an integer,
// which would break invariant 1's read/print round trip.
func realPrint(r Reference, w io.Writer) {
	s := strconv.FormatFloat(r.Payload.(float64), 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	fmt.Fprint(w, s)
}

func realEq(a, b Reference) bool {
	return a.Payload.(float64) == b.Payload.(float64)
}

// MakeReal returns a reference wrapping the double-precision value n.
func MakeReal(n float64) Reference {
	return Reference{Traits: realTraits, Payload: n}
}

// IsReal reports whether r is a real value.
func IsReal(r Reference) bool { return r.Traits == realTraits }

// RealValue returns r's underlying float64. Panics if r is not a real;
// callers must check IsReal first.
func RealValue(r Reference) float64 { return r.Payload.(float64) }
