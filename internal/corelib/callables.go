package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerCallables(env lisp.Reference) {
	def(env, "fn", fnFn)
	def(env, "macro", fnMacro)
	def(env, "closure", fnRawClosure)
	def(env, "make-closure", fnMakeClosure)
	def(env, "macro-expand", fnMacroExpand)
	def(env, "apply", fnApply)
	def(env, "closure-code", fnClosureCode)
	def(env, "closure-env", fnClosureEnv)
	def(env, "closure-param-list", fnClosureParamList)
}

// fnFn builds a function value: (fn params body) captures the defining
// environment and evaluates its arguments before binding (slfe_fn). The
// body is a single expression; sequencing several forms requires do.
func fnFn(args, env lisp.Reference) lisp.Reference {
	params := nthRaw(args, 0)
	defer lisp.Release(params)
	body := nthRaw(args, 1)
	defer lisp.Release(body)
	return lisp.MakeFunction(params, body, env)
}

// fnMacro builds a macro value: (macro params body) receives its
// arguments unevaluated and has its result re-evaluated in the calling
// context (slfe_macro).
func fnMacro(args, env lisp.Reference) lisp.Reference {
	params := nthRaw(args, 0)
	defer lisp.Release(params)
	body := nthRaw(args, 1)
	defer lisp.Release(body)
	return lisp.MakeMacro(params, body, env)
}

// fnRawClosure builds the raw closure variant: (closure params body)
// receives its arguments unevaluated and does not re-evaluate its result
// (slfe_closure).
func fnRawClosure(args, env lisp.Reference) lisp.Reference {
	params := nthRaw(args, 0)
	defer lisp.Release(params)
	body := nthRaw(args, 1)
	defer lisp.Release(body)
	return lisp.MakeClosure(params, body, env)
}

// fnMakeClosure builds a raw closure from three already-evaluated parts:
// (make-closure params code env) (slfe_make_closure).
func fnMakeClosure(args, env lisp.Reference) lisp.Reference {
	params := nthEval(args, env, 0)
	defer lisp.Release(params)
	code := nthEval(args, env, 1)
	defer lisp.Release(code)
	closureEnv := nthEval(args, env, 2)
	defer lisp.Release(closureEnv)
	return lisp.MakeClosure(params, code, closureEnv)
}

// fnMacroExpand evaluates its argument (a macro call) one step without
// re-evaluating the expansion, returning the expansion itself
// (slfe_macro_expand).
func fnMacroExpand(args, env lisp.Reference) lisp.Reference {
	form := nthEval(args, env, 0)
	defer lisp.Release(form)

	if !lisp.IsCons(form) {
		return lisp.Clone(form)
	}
	head := lisp.Car(form)
	defer lisp.Release(head)
	macroVal := lisp.Eval(head, env)
	defer lisp.Release(macroVal)

	if !lisp.IsClosure(macroVal) {
		lisp.ReportError("macro-expand called on a form whose head is not a macro")
		return lisp.Nil
	}
	callArgs := lisp.Cdr(form)
	defer lisp.Release(callArgs)
	return lisp.Apply(macroVal, callArgs)
}

// fnApply calls an already-evaluated callable against an already-built
// argument list: (apply callable args) (slfe_apply).
func fnApply(args, env lisp.Reference) lisp.Reference {
	callable := nthEval(args, env, 0)
	defer lisp.Release(callable)
	callArgs := nthEval(args, env, 1)
	defer lisp.Release(callArgs)
	return lisp.Apply(callable, callArgs)
}

func fnClosureCode(args, env lisp.Reference) lisp.Reference {
	c := nthEval(args, env, 0)
	defer lisp.Release(c)
	if !lisp.IsClosure(c) {
		lisp.ReportError("closure-code called on a non-closure value")
		return lisp.Nil
	}
	return lisp.ClosureCode(c)
}

func fnClosureEnv(args, env lisp.Reference) lisp.Reference {
	c := nthEval(args, env, 0)
	defer lisp.Release(c)
	if !lisp.IsClosure(c) {
		lisp.ReportError("closure-env called on a non-closure value")
		return lisp.Nil
	}
	return lisp.ClosureEnv(c)
}

func fnClosureParamList(args, env lisp.Reference) lisp.Reference {
	c := nthEval(args, env, 0)
	defer lisp.Release(c)
	if !lisp.IsClosure(c) {
		lisp.ReportError("closure-param-list called on a non-closure value")
		return lisp.Nil
	}
	return lisp.ClosureParamList(c)
}
