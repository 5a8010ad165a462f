package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerPairs(env lisp.Reference) {
	def(env, "cons", fnCons)
	def(env, "car", fnCar)
	def(env, "cdr", fnCdr)
}

func fnCons(args, env lisp.Reference) lisp.Reference {
	a := nthEval(args, env, 0)
	defer lisp.Release(a)
	b := nthEval(args, env, 1)
	defer lisp.Release(b)
	return lisp.MakeCons(a, b)
}

func fnCar(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	defer lisp.Release(v)
	return lisp.Car(v)
}

func fnCdr(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	defer lisp.Release(v)
	return lisp.Cdr(v)
}
