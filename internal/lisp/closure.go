package lisp

import (
	"io"

	"github.com/cwbudde/go-smalisp/internal/gcmem"
)

// closureVariant distinguishes the three callable variants that share
// the same (params, body, captured-environment) storage and Apply
// procedure (§4.6), differing only in their Execute policy.
type closureVariant int

const (
	variantRaw closureVariant = iota
	variantFunction
	variantMacro
)

// closureObj is the shared heap representation of all three variants.
type closureObj struct {
	gcmem.Header
	variant  closureVariant
	paramList Reference
	code      Reference
	env       Reference // a Stack reference (the captured environment)
}

// The closure traits are assigned in init: each Execute reaches Apply,
// whose IsClosure check refers back to all three tables.
var rawClosureTraits, functionTraits, macroTraits *Traits

func init() {
	rawClosureTraits = &Traits{
		Execute:  rawClosureExecute,
		Print:    closurePrinter("closure"),
		TypeName: func(Reference) Reference { return MakeSymbol("closure") },
		Eq:       closureEq,
		Eql:      closureEql,
		AddRef:   closureAddRef,
		Release:  closureRelease,
	}
	functionTraits = &Traits{
		Execute:  functionExecute,
		Print:    closurePrinter("function"),
		TypeName: func(Reference) Reference { return MakeSymbol("function") },
		Eq:       closureEq,
		Eql:      closureEql,
		AddRef:   closureAddRef,
		Release:  closureRelease,
	}
	macroTraits = &Traits{
		Execute:  macroExecute,
		Print:    closurePrinter("macro"),
		TypeName: func(Reference) Reference { return MakeSymbol("macro") },
		Eq:       closureEq,
		Eql:      closureEql,
		AddRef:   closureAddRef,
		Release:  closureRelease,
	}
}

func closureAddRef(r Reference)  { gcmem.AddRef(r.Payload.(*closureObj)) }
func closureRelease(r Reference) { gcmem.Release(r.Payload.(*closureObj)) }

func (c *closureObj) GCMark() {
	markRef(c.paramList)
	markRef(c.code)
	markRef(c.env)
}

func (c *closureObj) GCReleaseRefs() {
	Release(c.paramList)
	Release(c.code)
	Release(c.env)
	c.paramList, c.code, c.env = Nil, Nil, Nil
}

func (c *closureObj) GCFreeMem() {}

func closureEq(a, b Reference) bool {
	return a.Payload.(*closureObj) == b.Payload.(*closureObj)
}

func closureEql(a, b Reference) bool {
	ac, bc := a.Payload.(*closureObj), b.Payload.(*closureObj)
	return Eql(ac.paramList, bc.paramList) && Eql(ac.code, bc.code) && Eql(ac.env, bc.env)
}

func closurePrinter(tag string) func(Reference, io.Writer) {
	return func(r Reference, w io.Writer) {
		c := r.Payload.(*closureObj)
		io.WriteString(w, "#<"+tag+" ")
		print1(c.paramList, w)
		io.WriteString(w, " ")
		print1(c.code, w)
		io.WriteString(w, " ")
		print1(c.env, w)
		io.WriteString(w, ">")
	}
}

func makeClosureVariant(variant closureVariant, traits *Traits, paramList, code, env Reference) Reference {
	if !IsStack(env) {
		ReportError("closure constructed with env not a stack")
		return Nil
	}
	c := &closureObj{
		variant:   variant,
		paramList: Clone(paramList),
		code:      Clone(code),
		env:       Clone(env),
	}
	gcmem.Register(c)
	return Reference{Traits: traits, Payload: c}
}

// MakeClosure, MakeFunction and MakeMacro build the three callable
// variants (make_closure / make_function / make_macro).
func MakeClosure(paramList, code, env Reference) Reference {
	return makeClosureVariant(variantRaw, rawClosureTraits, paramList, code, env)
}
func MakeFunction(paramList, code, env Reference) Reference {
	return makeClosureVariant(variantFunction, functionTraits, paramList, code, env)
}
func MakeMacro(paramList, code, env Reference) Reference {
	return makeClosureVariant(variantMacro, macroTraits, paramList, code, env)
}

// IsClosure reports whether r is any of the three closure variants.
func IsClosure(r Reference) bool {
	return r.Traits == rawClosureTraits || r.Traits == functionTraits || r.Traits == macroTraits
}

// ClosureParamList, ClosureCode and ClosureEnv expose a closure's parts
// for the closure-param-list / closure-code / closure-env primitives.
func ClosureParamList(r Reference) Reference { return Clone(r.Payload.(*closureObj).paramList) }
func ClosureCode(r Reference) Reference      { return Clone(r.Payload.(*closureObj).code) }
func ClosureEnv(r Reference) Reference       { return Clone(r.Payload.(*closureObj).env) }

// Apply runs callable against args (already evaluated or not, depending
// on the caller's variant policy): bind the parameter list to args in a
// fresh child frame of the captured environment, evaluate the body
// there, then release the transient frame (§4.6).
//
// Binding is positional with dotted-tail support: a proper parameter
// list binds one formal per actual, extra actuals silently ignored and
// missing actuals bound to Nil; an improper (dotted) tail name binds to
// the remaining unconsumed arguments as a list. This resolves the
// spec's open parameter-binding question explicitly in favor of the
// conventional Lisp convention rather than the source's narrower
// two-parallel-list descent (see SPEC_FULL.md §4.6).
func Apply(callable, args Reference) Reference {
	if !IsClosure(callable) {
		ReportError("called with a value that is not a closure, function or macro")
		return Nil
	}
	c := callable.Payload.(*closureObj)

	paramFrame := MakeStack(c.env)
	defer Release(paramFrame)

	bindParams(c.paramList, args, paramFrame)

	return Eval(c.code, paramFrame)
}

// bindParams walks params and args in lock-step, binding each formal
// symbol to its actual value in frame's stack via Let. A symbol found as
// an improper tail (params itself is a symbol, not nil/cons) binds to the
// remaining args list verbatim.
func bindParams(params, args Reference, frame Reference) {
	s := StackOf(frame)
	cur := Clone(params)
	rest := Clone(args)
	for {
		switch {
		case IsNil(cur):
			Release(cur)
			Release(rest)
			return
		case IsSymbol(cur):
			stackLet(s, cur, rest)
			Release(cur)
			Release(rest)
			return
		case IsCons(cur):
			name := Car(cur)
			val := Car(rest)
			stackLet(s, name, val)
			Release(name)
			Release(val)

			nextCur := Cdr(cur)
			nextRest := Cdr(rest)
			Release(cur)
			Release(rest)
			cur = nextCur
			rest = nextRest
		default:
			Release(cur)
			Release(rest)
			return
		}
	}
}

func rawClosureExecute(instance, args, _ Reference) Reference {
	return Apply(instance, args)
}

func functionExecute(instance, args, callingContext Reference) Reference {
	evaledArgs := MapEval(args, callingContext)
	defer Release(evaledArgs)
	return Apply(instance, evaledArgs)
}

func macroExecute(instance, args, callingContext Reference) Reference {
	code := Apply(instance, args)
	defer Release(code)
	return Eval(code, callingContext)
}
