package corelib

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-smalisp/internal/lisp"
	"github.com/cwbudde/go-smalisp/internal/reader"
)

// evalString reads and evaluates every form in src against a fresh
// top-level environment seeded with the core library, returning the
// last form's result.
func evalString(t *testing.T, src string) lisp.Reference {
	t.Helper()
	env := lisp.NewTopLevelStack()
	t.Cleanup(func() { lisp.UnregisterRoot(env) })
	Register(env)

	rd := reader.New(strings.NewReader(src))
	result := lisp.Nil
	for {
		form, err := rd.Read()
		if err != nil {
			break
		}
		lisp.Release(result)
		result = lisp.Eval(form, env)
		lisp.Release(form)
	}
	return result
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"(+ 1 2 3)", 6},
		{"(- 10 3 2)", 5},
		{"(* 2 3 4)", 24},
		{"(/ 20 2 2)", 5},
		{"(% 10 3)", 1},
		{"(& 12 10)", 8},
		{"(|\\|| 12 3)", 15},
		{"(^ 5 3)", 6},
		{"(~ 0)", -1},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			result := evalString(t, c.src)
			defer lisp.Release(result)
			if !lisp.IsInteger(result) || lisp.IntegerValue(result) != c.want {
				t.Fatalf("%s: expected %d, got %v", c.src, c.want, result.Payload)
			}
		})
	}
}

func TestArithmeticTypeMismatchYieldsNil(t *testing.T) {
	result := evalString(t, `(+ 1 2.0)`)
	defer lisp.Release(result)
	if !lisp.IsNil(result) {
		t.Fatalf("expected mismatched integer/real add to yield nil, got %v", result.Payload)
	}
}

func TestCondAndIf(t *testing.T) {
	result := evalString(t, `(cond ((eq 1 2) 'a) ((eq 1 1) 'b))`)
	defer lisp.Release(result)
	if !lisp.IsSymbol(result) || lisp.SymbolName(result) != "b" {
		t.Fatalf("expected cond to select the second clause, got %v", result)
	}

	ifResult := evalString(t, `(if () 'then 'else)`)
	defer lisp.Release(ifResult)
	if !lisp.IsSymbol(ifResult) || lisp.SymbolName(ifResult) != "else" {
		t.Fatalf("expected if with a nil test to take the else branch, got %v", ifResult)
	}
}

func TestLetAndClosureCapture(t *testing.T) {
	result := evalString(t, `
		(let make-adder (fn (n) (fn (m) (+ n m))))
		(let add5 (make-adder 5))
		(add5 10)
	`)
	defer lisp.Release(result)
	if !lisp.IsInteger(result) || lisp.IntegerValue(result) != 15 {
		t.Fatalf("expected closure capture to produce 15, got %v", result.Payload)
	}
}

func TestMacroVsFunctionArgumentEvaluation(t *testing.T) {
	// A function evaluates its arguments before the call is made; passing
	// an unbound symbol must fail.
	funcResult := evalString(t, `
		(let f (fn (x) x))
		(f unbound-name)
	`)
	lisp.Release(funcResult)

	// A macro receives the form unevaluated, so quoting inside the macro
	// body can defer evaluation entirely.
	macroResult := evalString(t, `
		(let m (macro (x) (quote (quote ok))))
		(m unbound-name)
	`)
	defer lisp.Release(macroResult)
	if !lisp.IsSymbol(macroResult) || lisp.SymbolName(macroResult) != "ok" {
		t.Fatalf("expected macro to avoid evaluating its argument, got %v", macroResult)
	}
}

func TestQuasiquoteSubstitutesUnquote(t *testing.T) {
	result := evalString(t, `
		(let x 5)
		(quasiquote (a (unquote x) c))
	`)
	defer lisp.Release(result)
	if got := lisp.Sprint(result); got != "(a 5 c)" {
		t.Fatalf("expected quasiquote to splice in the unquoted value, got %q", got)
	}
}

func TestGCStats(t *testing.T) {
	result := evalString(t, `(gc-stats)`)
	defer lisp.Release(result)
	if !lisp.IsCons(result) {
		t.Fatalf("expected gc-stats to return a cons pair, got %v", result)
	}
	live := lisp.Car(result)
	defer lisp.Release(live)
	roots := lisp.Cdr(result)
	defer lisp.Release(roots)
	if !lisp.IsInteger(live) || !lisp.IsInteger(roots) {
		t.Fatalf("expected (live-count . root-count) as integers, got %v", result)
	}
}

func TestStrcoll(t *testing.T) {
	result := evalString(t, `(strcoll "apple" "banana")`)
	defer lisp.Release(result)
	if !lisp.IsInteger(result) || lisp.IntegerValue(result) >= 0 {
		t.Fatalf("expected \"apple\" to collate before \"banana\", got %v", result.Payload)
	}
}
