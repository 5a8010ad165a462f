package lisp

import (
	"fmt"
	"io"
	"strconv"
)

var integerTraits = &Traits{
	// no Eval: integers self-evaluate via the evaluator's default branch.
	Print:    integerPrint,
	TypeName: func(Reference) Reference { return MakeSymbol("integer") },
	Eq:       integerEq,
	Eql:      integerEq,
	// no AddRef/Release: integers are value payloads (int64), not heap
	// objects; cloning/releasing them is a no-op, same as the original's
	// "not garbage collected, no refcount" atoms.
}

func integerPrint(r Reference, w io.Writer) {
	fmt.Fprint(w, strconv.FormatInt(r.Payload.(int64), 10))
}

func integerEq(a, b Reference) bool {
	return a.Payload.(int64) == b.Payload.(int64)
}

// MakeInteger returns a reference wrapping the machine integer n.
func MakeInteger(n int64) Reference {
	return Reference{Traits: integerTraits, Payload: n}
}

// IsInteger reports whether r is an integer value.
func IsInteger(r Reference) bool { return r.Traits == integerTraits }

// IntegerValue returns r's underlying int64. Panics if r is not an
// integer; callers must check IsInteger first.
func IntegerValue(r Reference) int64 { return r.Payload.(int64) }
