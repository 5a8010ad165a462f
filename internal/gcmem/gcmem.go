// Package gcmem implements the interpreter's memory manager: deterministic
// reference counting (layer A) backed by a tracing mark-sweep collector
// (layer B) that reclaims the cycles reference counting alone cannot
// reach. It is deliberately ignorant of what a Node actually represents —
// cons cells, closures, stacks and frames all register themselves the
// same way, mirroring gc_object_t in the original C implementation.
package gcmem

// Node is any heap object that participates in the tracing collector. A
// value kind that cannot form a cycle (integers, strings, symbols) never
// implements Node and is managed by its own simple refcount instead; see
// package lisp for that split.
type Node interface {
	// GCMark marks every Node this object references, via Mark (which is
	// idempotent, so cycles terminate the recursion naturally).
	GCMark()
	// GCReleaseRefs drops this object's outgoing references. Called on
	// every condemned object during sweep before any of them are freed.
	GCReleaseRefs()
	// GCFreeMem releases this object's own memory. Never touches other
	// Nodes (that already happened in GCReleaseRefs).
	GCFreeMem()

	header() *Header
}

// Header is the embeddable bookkeeping block every Node carries: a
// singly-linked list pointer joining every live object, a mark bit, and a
// saturating one-byte reference count.
type Header struct {
	next    Node
	rc      byte
	marked  bool
	onList  bool
}

func (h *Header) header() *Header { return h }

// RCOverflow is the saturation sentinel: once a count reaches it, further
// increments are ignored and the object is only ever reclaimed by the
// tracer, never by reference counting reaching zero.
const RCOverflow = 255

var (
	firstObject   Node
	roots         []Node
	inSweepCycle  bool
	stackMarkHook func()
)

// SetStackRootMarker registers the hook invoked at the start of every mark
// phase to mark the current environment stack's frames as reachable. The
// lisp package installs this once, analogous to stack_gc_mark_root.
func SetStackRootMarker(f func()) { stackMarkHook = f }

// Register must be called exactly once by every heap constructor, with
// the object's reference count starting at 1.
func Register(n Node) {
	h := n.header()
	h.marked = false
	h.rc = 1
	h.next = firstObject
	h.onList = true
	firstObject = n
}

// AddRef increments n's reference count, saturating at RCOverflow. A nil
// Node is a no-op, matching release_ref/clone_ref's tolerance of NIL refs.
func AddRef(n Node) {
	if n == nil {
		return
	}
	h := n.header()
	if h.rc == RCOverflow {
		return
	}
	h.rc++
}

// Release decrements n's reference count. Outside of a sweep cycle,
// reaching zero frees the object immediately (layer A). During a sweep
// cycle, decrements to still-marked objects are recorded but never free
// them: a marked object is guaranteed reachable from another marked
// object, so it cannot legitimately hit zero mid-sweep.
func Release(n Node) {
	if n == nil {
		return
	}
	h := n.header()

	if inSweepCycle {
		if h.marked && h.rc != RCOverflow {
			h.rc--
		}
		return
	}

	if h.rc == RCOverflow {
		return
	}

	h.rc--
	if h.rc == 0 {
		unlink(n)
		n.GCReleaseRefs()
		n.GCFreeMem()
	}
}

// RefCount reports n's current reference count (0 for a nil Node).
func RefCount(n Node) byte {
	if n == nil {
		return 0
	}
	return n.header().rc
}

func unlink(target Node) {
	th := target.header()
	if !th.onList {
		return
	}
	if firstObject == target {
		firstObject = th.next
		th.next = nil
		th.onList = false
		return
	}
	for o := firstObject; o != nil; o = o.header().next {
		h := o.header()
		if h.next == target {
			h.next = th.next
			th.next = nil
			th.onList = false
			return
		}
	}
}

// RegisterRoot adds an explicit GC root, e.g. the top-level environment
// stack, taking a strong reference to it.
func RegisterRoot(n Node) {
	if n == nil {
		return
	}
	AddRef(n)
	roots = append(roots, n)
}

// UnregisterRoot removes a previously registered root and releases the
// collector's strong reference to it.
func UnregisterRoot(n Node) {
	if n == nil {
		return
	}
	for i, r := range roots {
		if r == n {
			roots = append(roots[:i], roots[i+1:]...)
			Release(n)
			return
		}
	}
}

// Mark marks n reachable and recurses into its outgoing references.
// Already-marked objects short-circuit, so this is safe on cyclic graphs.
func Mark(n Node) {
	if n == nil {
		return
	}
	h := n.header()
	if h.marked {
		return
	}
	h.marked = true
	n.GCMark()
}

// Collect runs one full mark-sweep cycle. Safe to call at any quiescent
// point between top-level forms; must never be called from within a
// trait callback (GCMark/GCReleaseRefs/GCFreeMem/Eval/Execute/...).
func Collect() {
	clearMarks()
	markRoots()
	sweep()
}

func clearMarks() {
	for o := firstObject; o != nil; o = o.header().next {
		o.header().marked = false
	}
}

func markRoots() {
	if stackMarkHook != nil {
		stackMarkHook()
	}
	for _, r := range roots {
		Mark(r)
	}
}

// sweep partitions the live-object list into kept (marked) and condemned
// (unmarked), then reclaims the condemned set drop-all-then-free-all: every
// condemned object releases its outgoing references before any condemned
// object's memory is freed, so two condemned objects referencing each
// other never observe a freed peer.
func sweep() {
	inSweepCycle = true

	var condemned []Node

	cur := firstObject
	var prevHeader *Header
	for cur != nil {
		h := cur.header()
		next := h.next
		if !h.marked {
			if prevHeader == nil {
				firstObject = next
			} else {
				prevHeader.next = next
			}
			h.next = nil
			h.onList = false
			condemned = append(condemned, cur)
		} else {
			prevHeader = h
		}
		cur = next
	}

	for _, o := range condemned {
		o.GCReleaseRefs()
	}
	for _, o := range condemned {
		o.GCFreeMem()
	}

	inSweepCycle = false
}

// LiveCount returns the number of heap objects currently threaded on the
// global object list (kept objects after the most recent sweep, plus
// anything allocated since). Used by the gc-stats primitive and tests.
func LiveCount() int {
	n := 0
	for o := firstObject; o != nil; o = o.header().next {
		n++
	}
	return n
}

// RootCount returns the number of explicitly registered GC roots.
func RootCount() int { return len(roots) }
