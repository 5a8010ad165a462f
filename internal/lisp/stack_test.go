package lisp

import "testing"

func TestLetSetVisibility(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	name := MakeSymbol("x")
	defer Release(name)
	val := MakeInteger(1)

	Let(top, name, val)
	StackEnter(top)
	if got := TopBindingValue(t, name); IntegerValue(got) != 1 {
		t.Fatalf("expected x bound to 1, got %v", got.Payload)
	}

	Set(top, name, MakeInteger(2))
	StackEnter(top)
	if got := TopBindingValue(t, name); IntegerValue(got) != 2 {
		t.Fatalf("expected x rebound to 2, got %v", got.Payload)
	}
}

// TopBindingValue reads a symbol's top-of-cache binding, asserting one
// exists.
func TopBindingValue(t *testing.T, name Reference) Reference {
	t.Helper()
	sym := name.Payload.(*Symbol)
	if !sym.HasBinding() {
		t.Fatalf("symbol %s has no binding", sym.name)
	}
	return sym.TopBinding()
}

func TestStackEnterReconcilesCachesAcrossSiblingScopes(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)

	outer := MakeSymbol("y")
	defer Release(outer)
	Let(top, outer, MakeInteger(10))

	child1 := MakeStack(top)
	defer Release(child1)
	inner := MakeSymbol("z")
	defer Release(inner)
	Let(child1, inner, MakeInteger(1))

	child2 := MakeStack(top)
	defer Release(child2)
	Let(child2, inner, MakeInteger(2))

	StackEnter(child1)
	if v := TopBindingValue(t, inner); IntegerValue(v) != 1 {
		t.Errorf("expected z=1 under child1, got %v", v.Payload)
	}

	StackEnter(child2)
	if v := TopBindingValue(t, inner); IntegerValue(v) != 2 {
		t.Errorf("expected z=2 under child2, got %v", v.Payload)
	}

	// outer's binding must be visible and unaffected by sibling switches.
	StackEnter(child1)
	if v := TopBindingValue(t, outer); IntegerValue(v) != 10 {
		t.Errorf("expected y=10 still visible under child1, got %v", v.Payload)
	}
}

func TestMakeStackSharesParentFrames(t *testing.T) {
	top := NewTopLevelStack()
	defer UnregisterRoot(top)
	child := MakeStack(top)
	defer Release(child)

	cs := StackOf(child)
	ps := StackOf(top)
	if len(cs.frames) != len(ps.frames)+1 {
		t.Fatalf("expected child to have one more frame than parent")
	}
	for i := range ps.frames {
		if cs.frames[i] != ps.frames[i] {
			t.Errorf("expected frame %d to be shared by pointer identity", i)
		}
	}
}
