package lisp

import "testing"

func TestApplyBindsPositionalParams(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	paramX := MakeSymbol("x")
	defer Release(paramX)
	params := List(paramX)
	defer Release(params)

	// body is the single expression x.
	fn := MakeFunction(params, paramX, top)
	defer Release(fn)

	args := List(MakeInteger(9))
	defer Release(args)

	result := functionExecute(fn, args, top)
	defer Release(result)
	if !IsInteger(result) || IntegerValue(result) != 9 {
		t.Fatalf("expected function applied to (9) to return 9, got %v", result.Payload)
	}
}

func TestApplyDottedTailBindsRemainingArgs(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	rest := MakeSymbol("rest")
	defer Release(rest)
	// paramList is just the symbol itself: an entirely dotted (vararg) list;
	// the body is that same symbol, evaluated to yield the captured list.
	fn := MakeFunction(rest, rest, top)
	defer Release(fn)

	args := List(MakeInteger(1), MakeInteger(2), MakeInteger(3))
	defer Release(args)

	result := functionExecute(fn, args, top)
	defer Release(result)

	elems, tail := ListToSlice(result)
	defer func() {
		for _, e := range elems {
			Release(e)
		}
		Release(tail)
	}()
	if len(elems) != 3 {
		t.Fatalf("expected rest to capture all 3 arguments, got %d", len(elems))
	}
}

func TestRawClosureDoesNotEvaluateArgs(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	paramX := MakeSymbol("x")
	defer Release(paramX)
	params := List(paramX)
	defer Release(params)

	// body is x, which evaluates to the unevaluated argument bound to it.
	cl := MakeClosure(params, paramX, top)
	defer Release(cl)

	unboundSym := MakeSymbol("never-bound")
	defer Release(unboundSym)
	args := List(unboundSym)
	defer Release(args)

	result := rawClosureExecute(cl, args, top)
	defer Release(result)
	if !IsSymbol(result) || SymbolName(result) != "never-bound" {
		t.Fatalf("raw closure must bind its parameter to the unevaluated argument, got %v", result)
	}
}

func TestMacroExecuteReevaluatesInCallingContext(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	answer := MakeSymbol("answer")
	defer Release(answer)
	Let(top, answer, MakeInteger(42))

	// quote is a corelib primitive, so bind a stand-in here: a raw
	// closure returning its unevaluated argument.
	quoteSym := MakeSymbol("quote")
	defer Release(quoteSym)
	paramX := MakeSymbol("x")
	defer Release(paramX)
	quoteParams := List(paramX)
	defer Release(quoteParams)
	Let(top, quoteSym, MakeClosure(quoteParams, paramX, top))

	// A macro with no parameters whose body expands to the symbol `answer`.
	body := List(quoteSym, answer)
	defer Release(body)

	macro := MakeMacro(Nil, body, top)
	defer Release(macro)

	result := macroExecute(macro, Nil, top)
	defer Release(result)
	if !IsInteger(result) || IntegerValue(result) != 42 {
		t.Fatalf("expected macro expansion to re-evaluate to 42, got %v", result.Payload)
	}
}
