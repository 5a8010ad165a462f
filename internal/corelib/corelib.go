// Package corelib is the core primitive library (§4.9-§4.11): the
// foreign functions every fresh top-level environment is seeded with.
// Each primitive decides for itself, per argument, whether to evaluate —
// there is no single calling convention the way there is for the three
// closure variants (§4.6).
package corelib

import (
	"github.com/cwbudde/go-smalisp/internal/lisp"
)

// Register installs the core primitive library into env's top frame,
// mirroring register_core_lib in the original.
func Register(env lisp.Reference) {
	registerControl(env)
	registerIntrospection(env)
	registerBinding(env)
	registerPairs(env)
	registerCallables(env)
	registerArithmetic(env)
	registerGC(env)
	registerDomain(env)
}

// def binds name to a freshly-built foreign-function reference in env's
// top frame, the Go-side equivalent of REG_FN / REG_NAMED_FN.
func def(env lisp.Reference, name string, fn lisp.ForeignFunc) {
	sym := lisp.MakeSymbol(name)
	val := lisp.MakeForeign(name, fn)
	lisp.Let(env, sym, val)
	lisp.Release(sym)
	lisp.Release(val)
}

// trueSymbol is the canonical truthy value primitives like eq/eql/atom
// return; any non-nil value is generally truthy for cond/if, but the
// original consistently returns the `t` symbol specifically.
func trueSymbol() lisp.Reference { return lisp.MakeSymbol("t") }

func boolRef(b bool) lisp.Reference {
	if b {
		return trueSymbol()
	}
	return lisp.Nil
}

// nthRaw returns the n-th (0-based) unevaluated element of the args
// list, the generalization of the original's repeated car/cadr/caddr
// chains (core_lib.c passim).
func nthRaw(args lisp.Reference, n int) lisp.Reference {
	cur := lisp.Clone(args)
	for i := 0; i < n; i++ {
		next := lisp.Cdr(cur)
		lisp.Release(cur)
		cur = next
	}
	result := lisp.Car(cur)
	lisp.Release(cur)
	return result
}

// nthEval evaluates the n-th unevaluated argument in env and returns the
// result; the caller owns the returned reference.
func nthEval(args, env lisp.Reference, n int) lisp.Reference {
	raw := nthRaw(args, n)
	result := lisp.Eval(raw, env)
	lisp.Release(raw)
	return result
}
