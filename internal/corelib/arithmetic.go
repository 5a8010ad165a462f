package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerArithmetic(env lisp.Reference) {
	def(env, "+", fnAdd)
	def(env, "-", fnSub)
	def(env, "*", fnMul)
	def(env, "/", fnDiv)
	def(env, "%", fnMod)
	def(env, "&", fnBitAnd)
	def(env, "|", fnBitOr)
	def(env, "^", fnBitXor)
	def(env, "~", fnBitNot)
}

// evalArgs evaluates every element of args in env into a plain Go slice,
// the caller owning each element.
func evalArgs(args, env lisp.Reference) []lisp.Reference {
	var out []lisp.Reference
	cur := lisp.Clone(args)
	for lisp.IsCons(cur) {
		out = append(out, lisp.Eval(lisp.Car(cur), env))
		next := lisp.Cdr(cur)
		lisp.Release(cur)
		cur = next
	}
	lisp.Release(cur)
	return out
}

func releaseAll(vals []lisp.Reference) {
	for _, v := range vals {
		lisp.Release(v)
	}
}

// foldNumeric reduces vals left to right with intOp/realOp, requiring
// every value be an integer or every value be a real (add/sub/mul/div,
// §4.9). A type mismatch or empty argument list reports an error and
// yields nil, matching the foreign-function error convention (§7).
func foldNumeric(name string, vals []lisp.Reference, intOp func(a, b int64) int64, realOp func(a, b float64) float64) lisp.Reference {
	if len(vals) == 0 {
		lisp.ReportError(name + " called with no arguments")
		return lisp.Nil
	}

	switch {
	case lisp.IsInteger(vals[0]):
		acc := lisp.IntegerValue(vals[0])
		for _, v := range vals[1:] {
			if !lisp.IsInteger(v) {
				lisp.ReportError(name + " called with mismatched integer/real arguments")
				return lisp.Nil
			}
			acc = intOp(acc, lisp.IntegerValue(v))
		}
		return lisp.MakeInteger(acc)
	case lisp.IsReal(vals[0]):
		acc := lisp.RealValue(vals[0])
		for _, v := range vals[1:] {
			if !lisp.IsReal(v) {
				lisp.ReportError(name + " called with mismatched integer/real arguments")
				return lisp.Nil
			}
			acc = realOp(acc, lisp.RealValue(v))
		}
		return lisp.MakeReal(acc)
	default:
		lisp.ReportError(name + " called with a non-numeric argument")
		return lisp.Nil
	}
}

func fnAdd(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldNumeric("+", vals,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func fnSub(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	if len(vals) == 1 {
		if lisp.IsInteger(vals[0]) {
			return lisp.MakeInteger(-lisp.IntegerValue(vals[0]))
		}
		if lisp.IsReal(vals[0]) {
			return lisp.MakeReal(-lisp.RealValue(vals[0]))
		}
	}
	return foldNumeric("-", vals,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

func fnMul(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldNumeric("*", vals,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

func fnDiv(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldNumeric("/", vals,
		func(a, b int64) int64 {
			if b == 0 {
				lisp.ReportError("/ called with a zero integer divisor")
				return 0
			}
			return a / b
		},
		func(a, b float64) float64 { return a / b })
}

// fnMod and the bitwise operators are integer-only (slfe_mod, slfe_bitand,
// slfe_bitor, slfe_bitxor).
func fnMod(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldIntegerOnly("%", vals, func(a, b int64) int64 {
		if b == 0 {
			lisp.ReportError("% called with a zero divisor")
			return 0
		}
		return a % b
	})
}

func fnBitAnd(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldIntegerOnly("&", vals, func(a, b int64) int64 { return a & b })
}

func fnBitOr(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldIntegerOnly("|", vals, func(a, b int64) int64 { return a | b })
}

func fnBitXor(args, env lisp.Reference) lisp.Reference {
	vals := evalArgs(args, env)
	defer releaseAll(vals)
	return foldIntegerOnly("^", vals, func(a, b int64) int64 { return a ^ b })
}

// fnBitNot is unary (slfe_bitnot).
func fnBitNot(args, env lisp.Reference) lisp.Reference {
	v := nthEval(args, env, 0)
	defer lisp.Release(v)
	if !lisp.IsInteger(v) {
		lisp.ReportError("~ called with a non-integer argument")
		return lisp.Nil
	}
	return lisp.MakeInteger(^lisp.IntegerValue(v))
}

func foldIntegerOnly(name string, vals []lisp.Reference, op func(a, b int64) int64) lisp.Reference {
	if len(vals) == 0 {
		lisp.ReportError(name + " called with no arguments")
		return lisp.Nil
	}
	for _, v := range vals {
		if !lisp.IsInteger(v) {
			lisp.ReportError(name + " called with a non-integer argument")
			return lisp.Nil
		}
	}
	acc := lisp.IntegerValue(vals[0])
	for _, v := range vals[1:] {
		acc = op(acc, lisp.IntegerValue(v))
	}
	return lisp.MakeInteger(acc)
}
