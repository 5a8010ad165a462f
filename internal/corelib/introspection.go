package corelib

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-smalisp/internal/lisp"
)

func registerIntrospection(env lisp.Reference) {
	def(env, "type", fnType)
	def(env, "eq", fnEq)
	def(env, "eql", fnEql)
	def(env, "atom", fnAtom)
	def(env, "print", fnPrint)
	def(env, "read", fnRead)
	def(env, "eval", fnEval)
	def(env, "get-env", fnGetEnv)
	def(env, "env-set", fnEnvSet)
	def(env, "env-let", fnEnvLet)
}

func fnType(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	result := lisp.TypeName(v)
	lisp.Release(v)
	return result
}

func fnEq(args, env lisp.Reference) lisp.Reference {
	a := nthEval(args, env, 0)
	b := nthEval(args, env, 1)
	result := boolRef(lisp.Eq(a, b))
	lisp.Release(a)
	lisp.Release(b)
	return result
}

func fnEql(args, env lisp.Reference) lisp.Reference {
	a := nthEval(args, env, 0)
	b := nthEval(args, env, 1)
	result := boolRef(lisp.Eql(a, b))
	lisp.Release(a)
	lisp.Release(b)
	return result
}

func fnAtom(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	result := boolRef(!lisp.IsCons(v))
	lisp.Release(v)
	return result
}

// fnPrint evaluates its argument, writes its read-compatible form
// followed by a newline to the configured print sink, and returns the
// evaluated value (slfe_print / println).
func fnPrint(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	lisp.Fprint(printSink, v)
	fmt.Fprintln(printSink)
	return v
}

// fnRead reads and returns the next form from the configured read
// source; EOF reads as nil (slfe_read).
func fnRead(_, _ lisp.Reference) lisp.Reference {
	v, err := readSource.Read()
	if err != nil && err != io.EOF {
		lisp.ReportError(err.Error())
		return lisp.Nil
	}
	return v
}

// fnEval evaluates its first argument, then evaluates the result again —
// in the optional second argument's environment if given, otherwise in
// the calling environment (slfe_eval).
func fnEval(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	defer lisp.Release(v)

	targetEnvForm := nthRaw(args, 1)
	defer lisp.Release(targetEnvForm)

	if lisp.IsNil(targetEnvForm) {
		return lisp.Eval(v, env)
	}

	targetEnv := lisp.Eval(targetEnvForm, env)
	defer lisp.Release(targetEnv)
	return lisp.Eval(v, targetEnv)
}

func fnGetEnv(_, env lisp.Reference) lisp.Reference {
	return lisp.Clone(env)
}

func fnEnvSet(args, env lisp.Reference) lisp.Reference {
	name := nthEval(args, env, 0)
	defer lisp.Release(name)
	val := nthEval(args, env, 1)
	targetEnv := nthEval(args, env, 2)
	defer lisp.Release(targetEnv)

	lisp.Set(targetEnv, name, val)
	return val
}

func fnEnvLet(args, env lisp.Reference) lisp.Reference {
	name := nthEval(args, env, 0)
	defer lisp.Release(name)
	val := nthEval(args, env, 1)
	targetEnv := nthEval(args, env, 2)
	defer lisp.Release(targetEnv)

	lisp.Let(targetEnv, name, val)
	return val
}
