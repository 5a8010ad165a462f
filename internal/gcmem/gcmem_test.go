package gcmem

import "testing"

// fakeNode is a minimal Node whose outgoing edge is explicit, so tests
// can build small object graphs (including cycles) by hand.
type fakeNode struct {
	Header
	ref   Node
	freed *bool
}

func newFakeNode(freed *bool) *fakeNode {
	n := &fakeNode{freed: freed}
	Register(n)
	return n
}

func (n *fakeNode) GCMark()        { Mark(n.ref) }
func (n *fakeNode) GCReleaseRefs() { Release(n.ref); n.ref = nil }
func (n *fakeNode) GCFreeMem() {
	if n.freed != nil {
		*n.freed = true
	}
}

func TestRefcountFreesOnZero(t *testing.T) {
	freed := false
	n := newFakeNode(&freed)

	AddRef(n)
	Release(n)
	if freed {
		t.Fatalf("expected node to survive while a reference remains")
	}

	Release(n)
	if !freed {
		t.Fatalf("expected node to be freed once its refcount reaches zero")
	}
}

func TestAddRefSaturatesAtOverflow(t *testing.T) {
	freed := false
	n := newFakeNode(&freed)

	for i := 0; i < int(RCOverflow)+10; i++ {
		AddRef(n)
	}
	if RefCount(n) != RCOverflow {
		t.Fatalf("expected refcount to saturate at %d, got %d", RCOverflow, RefCount(n))
	}

	for i := 0; i < int(RCOverflow)+10; i++ {
		Release(n)
	}
	if freed {
		t.Fatalf("a saturated node must never be freed by refcounting alone")
	}
	sweepUnreachable(t)
	if !freed {
		t.Fatalf("expected the tracer to reclaim a saturated, now-unreachable node")
	}
}

// sweepUnreachable runs one collection cycle with no roots registered, so
// anything not already marked by the caller is condemned.
func sweepUnreachable(t *testing.T) {
	t.Helper()
	markRoots()
	sweep()
}

func TestCollectReclaimsCycle(t *testing.T) {
	var aFreed, bFreed bool
	a := newFakeNode(&aFreed)
	b := newFakeNode(&bFreed)
	a.ref = b
	AddRef(b)
	b.ref = a
	AddRef(a)

	// Drop the only external references; the pair still holds each other.
	Release(a)
	Release(b)

	Collect()

	if !aFreed || !bFreed {
		t.Fatalf("expected both nodes in the cycle to be reclaimed, got aFreed=%v bFreed=%v", aFreed, bFreed)
	}
}

func TestRegisteredRootSurvivesCollect(t *testing.T) {
	freed := false
	n := newFakeNode(&freed)
	RegisterRoot(n)
	defer UnregisterRoot(n)

	Collect()
	Collect()

	if freed {
		t.Fatalf("a registered root must never be swept")
	}
}

func TestUnregisterRootDropsReference(t *testing.T) {
	freed := false
	n := newFakeNode(&freed)
	RegisterRoot(n)

	UnregisterRoot(n)
	Collect()

	if !freed {
		t.Fatalf("expected the node to be reclaimed once its root reference is dropped")
	}
}
