package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerBinding(env lisp.Reference) {
	def(env, "let", fnLet)
	def(env, "set", fnSet)
}

// fnLet evaluates (let name value) and binds name in the calling
// environment's topmost frame (slfe_let).
func fnLet(args, env lisp.Reference) lisp.Reference {
	name := nthRaw(args, 0)
	defer lisp.Release(name)
	val := nthEval(args, env, 1)

	lisp.Let(env, name, val)
	return val
}

// fnSet evaluates (set name value) and rebinds name's nearest visible
// binding (slfe_set).
func fnSet(args, env lisp.Reference) lisp.Reference {
	name := nthRaw(args, 0)
	defer lisp.Release(name)
	val := nthEval(args, env, 1)

	lisp.Set(env, name, val)
	return val
}
