package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerControl(env lisp.Reference) {
	def(env, "quote", fnQuote)
	def(env, "quasiquote", fnQuasiquote)
	def(env, "cond", fnCond)
	def(env, "if", fnIf)
	def(env, "do", fnDo)
	def(env, "scope", fnScope)
}

// fnQuote returns its single argument unevaluated (slfe_quote).
func fnQuote(args, _ lisp.Reference) lisp.Reference {
	return lisp.Car(args)
}

// fnCond evaluates (test body) pairs in order until a test is non-nil,
// then evaluates and returns that body; yields nil if none matches
// (slfe_cond, §4.9).
func fnCond(args, env lisp.Reference) lisp.Reference {
	if lisp.IsNil(args) {
		return lisp.Nil
	}

	test := lisp.Caar(args)
	testResult := lisp.Eval(test, env)
	lisp.Release(test)

	if !lisp.IsNil(testResult) {
		lisp.Release(testResult)
		body := lisp.Cadar(args)
		result := lisp.Eval(body, env)
		lisp.Release(body)
		return result
	}
	lisp.Release(testResult)

	rest := lisp.Cdr(args)
	result := fnCond(rest, env)
	lisp.Release(rest)
	return result
}

// fnIf is cond's two/three-argument sugar: (if test then [else]).
func fnIf(args, env lisp.Reference) lisp.Reference {
	test := nthRaw(args, 0)
	testResult := lisp.Eval(test, env)
	lisp.Release(test)

	if !lisp.IsNil(testResult) {
		lisp.Release(testResult)
		then := nthRaw(args, 1)
		result := lisp.Eval(then, env)
		lisp.Release(then)
		return result
	}
	lisp.Release(testResult)

	elseForm := nthRaw(args, 2)
	if lisp.IsNil(elseForm) {
		lisp.Release(elseForm)
		return lisp.Nil
	}
	result := lisp.Eval(elseForm, env)
	lisp.Release(elseForm)
	return result
}

// fnDo evaluates every form in order and returns the last (slfe_do).
func fnDo(args, env lisp.Reference) lisp.Reference {
	first := lisp.Car(args)
	rest := lisp.Cdr(args)

	if lisp.IsNil(rest) {
		lisp.Release(rest)
		return lisp.Eval(first, env)
	}

	firstResult := lisp.Eval(first, env)
	lisp.Release(first)
	lisp.Release(firstResult)

	result := fnDo(rest, env)
	lisp.Release(rest)
	return result
}

// fnScope runs a do-style body in a fresh child environment (slfe_scope).
func fnScope(args, env lisp.Reference) lisp.Reference {
	child := lisp.MakeStack(env)
	result := fnDo(args, child)
	lisp.Release(child)
	return result
}

// fnQuasiquote substitutes (unquote x) forms with the evaluated value of
// x, leaving everything else quoted (slfe_quasiquote / _do_quasiquote).
func fnQuasiquote(args, env lisp.Reference) lisp.Reference {
	arg := lisp.Car(args)
	result := quasiquote(arg, env)
	lisp.Release(arg)
	return result
}

func quasiquote(v, env lisp.Reference) lisp.Reference {
	if !lisp.IsCons(v) {
		return lisp.Clone(v)
	}

	head := lisp.Car(v)
	unquoteSym := lisp.MakeSymbol("unquote")
	isUnquote := lisp.Eql(head, unquoteSym)
	lisp.Release(unquoteSym)

	if isUnquote {
		lisp.Release(head)
		arg := lisp.Cadr(v)
		result := lisp.Eval(arg, env)
		lisp.Release(arg)
		return result
	}

	a := quasiquote(head, env)
	lisp.Release(head)

	tail := lisp.Cdr(v)
	b := quasiquote(tail, env)
	lisp.Release(tail)

	result := lisp.MakeCons(a, b)
	lisp.Release(a)
	lisp.Release(b)
	return result
}
