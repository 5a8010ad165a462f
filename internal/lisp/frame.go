package lisp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-smalisp/internal/gcmem"
)

// frameSlot is one (symbol, value) binding in a Frame, both held with a
// strong reference (§3: "Strong references to both symbol and value").
type frameSlot struct {
	symbol Reference
	value  Reference
}

// Frame is a lexical scope's mapping of symbol to value, implemented as a
// small linear-scan slot list (§4.5: "frames are typically small"). It is
// a gcmem.Node because a frame's value slots can reach back into the
// frame itself through a captured closure — the motivating cycle in §3.
type Frame struct {
	gcmem.Header
	slots []frameSlot
}

// frameTraits has no Eval/Execute/Print/TypeName/Eq — Frame is a hidden
// type in the original (stack_frame_type leaves those trait slots empty)
// and is never itself handed out as a first-class Reference value.
var frameTraits = &Traits{
	AddRef:  func(r Reference) { gcmem.AddRef(r.Payload.(*Frame)) },
	Release: func(r Reference) { gcmem.Release(r.Payload.(*Frame)) },
}

// NewFrame allocates an empty frame registered with the collector.
func NewFrame() *Frame {
	f := &Frame{}
	gcmem.Register(f)
	return f
}

// find returns the slot bound to name, inserting a fresh nil-valued slot
// if insert is true and none exists (stack_frame_find).
func (f *Frame) find(name Reference, insert bool) *frameSlot {
	for i := range f.slots {
		if Eq(f.slots[i].symbol, name) {
			return &f.slots[i]
		}
	}
	if !insert {
		return nil
	}
	f.slots = append(f.slots, frameSlot{symbol: Clone(name), value: Nil})
	return &f.slots[len(f.slots)-1]
}

// Erase removes name's slot, if present (stack_frame_erase).
func (f *Frame) Erase(name Reference) {
	for i := range f.slots {
		if Eq(f.slots[i].symbol, name) {
			Release(f.slots[i].symbol)
			Release(f.slots[i].value)
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return
		}
	}
}

func (f *Frame) GCMark() {
	for _, s := range f.slots {
		markRef(s.symbol)
		markRef(s.value)
	}
}

func (f *Frame) GCReleaseRefs() {
	for _, s := range f.slots {
		Release(s.symbol)
		Release(s.value)
	}
	f.slots = nil
}

func (f *Frame) GCFreeMem() {}

// popBindings pops every slot's cache entry at frameIndex
// (stack_frame_pop_bindings), walking back to front as the original does.
func (f *Frame) popBindings(frameIndex int) {
	for i := len(f.slots) - 1; i >= 0; i-- {
		f.slots[i].symbol.Payload.(*Symbol).Unset(frameIndex)
	}
}

// pushBindings pushes every slot's value into its symbol's cache at
// frameIndex (stack_frame_push_bindings).
func (f *Frame) pushBindings(frameIndex int) {
	for i := range f.slots {
		f.slots[i].symbol.Payload.(*Symbol).Let(f.slots[i].value, frameIndex)
	}
}

// DebugPrint writes a human-readable dump of f's bindings, mirroring
// stack_frame_debug_print (used by Stack.DebugPrint for the dump-stack
// primitive).
func (f *Frame) DebugPrint(w io.Writer) {
	for _, s := range f.slots {
		print1(s.symbol, w)
		io.WriteString(w, " -> ")
		print1(s.value, w)
		fmt.Fprintln(w)
	}
}
