package lisp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-smalisp/internal/gcmem"
)

// Stack is an ordered sequence of frame handles representing a lexical
// environment (§3, §4.5). A new stack may share a prefix of frames with
// its parent; frames are reference-counted and may appear in several
// stacks at once.
type Stack struct {
	gcmem.Header
	frames []*Frame
	parent *Stack
}

var stackTraits = &Traits{
	// Not evaluable, not executable (stack_traits in the original leaves
	// both slots 0): a stack is environment plumbing, not a value forms
	// evaluate to.
	Print:    stackPrint,
	TypeName: func(Reference) Reference { return MakeSymbol("stack") },
	Eq:       stackEq,
	Eql:      stackEq,
	AddRef:   func(r Reference) { gcmem.AddRef(r.Payload.(*Stack)) },
	Release:  func(r Reference) { gcmem.Release(r.Payload.(*Stack)) },
}

func stackEq(a, b Reference) bool { return a.Payload.(*Stack) == b.Payload.(*Stack) }

func stackPrint(r Reference, w io.Writer) {
	fmt.Fprintf(w, "#<stack %p>", r.Payload.(*Stack))
}

// IsStack reports whether r is an environment-stack value.
func IsStack(r Reference) bool { return r.Traits == stackTraits }

// StackOf unwraps r's underlying *Stack. Panics if r is not a stack.
func StackOf(r Reference) *Stack { return r.Payload.(*Stack) }

func (s *Stack) GCMark() {
	for _, f := range s.frames {
		gcmem.Mark(f)
	}
}

func (s *Stack) GCReleaseRefs() {
	for _, f := range s.frames {
		gcmem.Release(f)
	}
	s.frames = nil
}

func (s *Stack) GCFreeMem() {}

// DebugPrint writes a human-readable dump of every frame in s, innermost
// first, mirroring stack_debug_print (the CLI's dump-stack primitive).
func (s *Stack) DebugPrint(w io.Writer) {
	fmt.Fprintf(w, "### Stack dump for stack %p:\n", s)
	for i := len(s.frames) - 1; i >= 0; i-- {
		s.frames[i].DebugPrint(w)
	}
	fmt.Fprintln(w, "#################")
}

// NewTopLevelStack creates a fresh root environment with no parent and
// registers it as a GC root, the way the CLI's entry point does for the
// process's single top-level environment (§6 "Collector cadence").
func NewTopLevelStack() Reference {
	s := MakeStack(Nil)
	RegisterRoot(s)
	return s
}

// MakeStack creates a new stack whose frame sequence is parent's (shared
// by reference count) plus one fresh empty frame on top. A Nil parent
// starts a brand-new environment holding just that one fresh frame (used
// for the top level).
func MakeStack(parent Reference) Reference {
	s := &Stack{}
	if !IsNil(parent) {
		ps := StackOf(parent)
		s.parent = ps
		s.frames = make([]*Frame, len(ps.frames), len(ps.frames)+1)
		copy(s.frames, ps.frames)
		for _, f := range s.frames {
			gcmem.AddRef(f)
		}
	}
	newFrame := NewFrame()
	s.frames = append(s.frames, newFrame)
	gcmem.Register(s)
	return Reference{Traits: stackTraits, Payload: s}
}

// topFrame returns s's innermost frame, or nil if s has none.
func (s *Stack) topFrame() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// current is the process-global current stack (§3, §4.5): the single
// stack whose bindings are presently mirrored into the symbol caches.
var current *Stack

// StackSwitchCount counts every completed stack_enter, mirroring the
// original's stack_switch_count statistic (surfaced by the CLI's --stats
// flag alongside SymbolEvalCount).
var StackSwitchCount int

func init() {
	gcmem.SetStackRootMarker(func() {
		if current != nil {
			gcmem.Mark(current)
		}
	})
}

// CurrentStack returns the process-global current stack, or Nil if none
// has been entered yet.
func CurrentStack() Reference {
	if current == nil {
		return Nil
	}
	return Reference{Traits: stackTraits, Payload: current}
}

// frameIndexIn returns the index of target within s's frame vector, or
// -1 if target is not one of s's frames (vector_findr).
func frameIndexIn(s *Stack, target *Frame) int {
	if s == nil {
		return -1
	}
	for i, f := range s.frames {
		if f == target {
			return i
		}
	}
	return -1
}

// StackEnter performs the stack-switching protocol of §4.5: unwind the
// old current stack's symbol-cache entries above the shared prefix, then
// push the new stack's entries above that same prefix. A Nil stack enters
// the empty environment (no frames at all).
func StackEnter(stack Reference) {
	var s *Stack
	if !IsNil(stack) {
		s = StackOf(stack)
	}
	stackEnter(s)
}

func stackEnter(s *Stack) {
	if s == current {
		return
	}

	numCommon := 0
	if current != nil && s != nil {
		for numCommon < len(current.frames) && numCommon < len(s.frames) &&
			current.frames[numCommon] == s.frames[numCommon] {
			numCommon++
		}
	}

	if current != nil {
		for i := len(current.frames) - 1; i >= numCommon; i-- {
			current.frames[i].popBindings(i)
		}
	}

	if s != nil {
		for i := numCommon; i < len(s.frames); i++ {
			s.frames[i].pushBindings(i)
		}
		gcmem.AddRef(s)
	}

	StackSwitchCount++

	old := current
	current = s
	if old != nil {
		gcmem.Release(old)
	}
}

// Let binds name to val in env's topmost frame (stack_let), reporting a
// type error instead of acting if env is not a stack or name not a
// symbol.
func Let(env, name, val Reference) {
	if !IsStack(env) {
		ReportError("called with name not a stack")
		return
	}
	if !IsSymbol(name) {
		ReportError("called with name not a symbol")
		return
	}
	stackLet(StackOf(env), name, val)
}

// Set overwrites name's nearest visible binding in env (stack_set),
// reporting a type error instead of acting if env is not a stack or name
// not a symbol.
func Set(env, name, val Reference) {
	if !IsStack(env) {
		ReportError("called with name not a stack")
		return
	}
	if !IsSymbol(name) {
		ReportError("called with name not a symbol")
		return
	}
	stackSet(StackOf(env), name, val)
}

// stackSet locates, in s's frame sequence from innermost outward, the
// nearest frame already binding name, and overwrites its value there
// (stack_set / _stack_set). It mirrors the write into the current
// stack's symbol cache when s's matched frame is also present there.
func stackSet(s *Stack, name, val Reference) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		slot := f.find(name, false)
		if slot == nil {
			continue
		}
		Release(slot.value)
		slot.value = Clone(val)

		frameID := -1
		if s == current {
			frameID = i
		} else {
			frameID = frameIndexIn(current, f)
		}
		if frameID >= 0 {
			name.Payload.(*Symbol).Set(val, frameID)
		}
		return
	}
	ReportError("didn't find given name in the stack (so it could not be rebound)")
}

// stackLet binds name to val in s's topmost frame, inserting or
// overwriting (stack_let / _stack_let), mirroring into the current
// stack's symbol cache under the same rule as stackSet.
func stackLet(s *Stack, name, val Reference) {
	f := s.topFrame()
	if f == nil {
		ReportError("stack has no frame to bind into")
		return
	}
	slot := f.find(name, true)
	Release(slot.value)
	slot.value = Clone(val)

	frameID := -1
	if s == current {
		frameID = len(s.frames) - 1
	} else {
		frameID = frameIndexIn(current, f)
	}
	if frameID >= 0 {
		name.Payload.(*Symbol).Let(val, frameID)
	}
}
