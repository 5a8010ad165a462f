package lisp

// Eval evaluates expr in the environment context (a Stack reference),
// entering context as the current stack first — mirroring the original's
// eval(), which folds stack_enter into every evaluation so symbol
// binding caches are always in sync with whatever environment the
// evaluator is currently operating in (§4.5, §4.8).
func Eval(expr, context Reference) Reference {
	StackEnter(context)

	if expr.Traits == nil || expr.Traits.Eval == nil {
		return Clone(expr)
	}
	return expr.Traits.Eval(expr, context)
}

// Call is a guard that checks exec carries an Execute trait before
// dispatching to it; applying a non-callable head is a callable error
// that yields Nil rather than panicking (§7).
func Call(exec, args, context Reference) Reference {
	if !IsCallable(exec) {
		ReportError("called with a value that is not callable")
		return Nil
	}
	return exec.Traits.Execute(exec, args, context)
}

// MapEval evaluates every element of list in context and returns a fresh
// list of the results, used by the function variant's argument
// evaluation policy (§4.8).
func MapEval(list, context Reference) Reference {
	if IsNil(list) {
		return Nil
	}
	head := Car(list)
	evaledHead := Eval(head, context)
	Release(head)

	tail := Cdr(list)
	evaledTail := MapEval(tail, context)
	Release(tail)

	result := MakeCons(evaledHead, evaledTail)
	Release(evaledHead)
	Release(evaledTail)
	return result
}
