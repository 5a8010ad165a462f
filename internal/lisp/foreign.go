package lisp

import (
	"fmt"
	"io"
)

// ForeignFunc is a primitive implemented in Go rather than in Lisp: it
// receives its call form's unevaluated argument list and the calling
// environment, and decides for itself whether and when to evaluate
// anything (§3 "Foreign executable", §4.9).
type ForeignFunc func(args, callingContext Reference) Reference

type foreignObj struct {
	name string
	fn   ForeignFunc
}

var foreignTraits = &Traits{
	Execute:  foreignExecute,
	Print:    foreignPrint,
	TypeName: func(Reference) Reference { return MakeSymbol("foreign") },
	Eq:       foreignEq,
	Eql:      foreignEq,
	// No AddRef/Release: primitives are registered once at startup and
	// live for the process's whole lifetime, exactly like the original's
	// statically allocated slfe_* function pointers.
}

func foreignExecute(instance, args, callingContext Reference) Reference {
	f := instance.Payload.(*foreignObj)
	return f.fn(args, callingContext)
}

func foreignEq(a, b Reference) bool {
	return a.Payload.(*foreignObj) == b.Payload.(*foreignObj)
}

func foreignPrint(r Reference, w io.Writer) {
	fmt.Fprintf(w, "#<foreign %s>", r.Payload.(*foreignObj).name)
}

// MakeForeign wraps a Go function as a callable primitive reference.
func MakeForeign(name string, fn ForeignFunc) Reference {
	return Reference{Traits: foreignTraits, Payload: &foreignObj{name: name, fn: fn}}
}

// IsForeign reports whether r is a foreign-function value.
func IsForeign(r Reference) bool { return r.Traits == foreignTraits }
