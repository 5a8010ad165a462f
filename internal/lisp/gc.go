package lisp

import "github.com/cwbudde/go-smalisp/internal/gcmem"

// RegisterRoot adds r to the tracing collector's explicit root set, if r
// carries a heap payload (cons, stack, frame, closure). Atoms that never
// form cycles are silently accepted as a no-op, matching the tolerance
// every release/addref trait in the original shows toward non-heap refs.
func RegisterRoot(r Reference) {
	if n, ok := r.Payload.(gcmem.Node); ok {
		gcmem.RegisterRoot(n)
	}
}

// UnregisterRoot removes r from the root set, releasing the collector's
// strong reference to it.
func UnregisterRoot(r Reference) {
	if n, ok := r.Payload.(gcmem.Node); ok {
		gcmem.UnregisterRoot(n)
	}
}

// CollectGarbage runs one mark-sweep cycle (gc-collect / between every
// top-level form, §6 "Collector cadence").
func CollectGarbage() { gcmem.Collect() }

// LiveObjectCount reports how many heap objects are presently threaded
// on the collector's global object list; used by gc-stats and the cycle
// reclamation test scenario in §8.
func LiveObjectCount() int { return gcmem.LiveCount() }

// RootObjectCount reports the size of the collector's explicit root set
// (gc-stats, §4.11).
func RootObjectCount() int { return gcmem.RootCount() }
