package lisp

import (
	"fmt"
	"io"
	"strings"
)

// binding is one entry of a symbol's binding-stack cache: the value
// visible at or above frameIndex, until a deeper entry shadows it.
type binding struct {
	value      Reference
	frameIndex int
}

// Symbol is an interned name. At most one Symbol exists per unique byte
// content (§3 invariant 2); content-addressing is enforced by Intern,
// never by constructing Symbol values directly.
//
// bindings is the per-symbol binding-stack cache described in §4.3: an
// ordered, frame-index-ascending list of (value, frame) pairs. These
// references are weak for GC purposes — they cache, but never own, the
// authoritative strong reference that a Frame slot holds (§3, §4.5).
type Symbol struct {
	name string
	hash uint64
	rc   byte

	bindings []binding

	// left/right form an unbalanced binary search tree node within this
	// symbol's hash partition (see internTable below). A true red-black
	// tree, as the original's rbt.c implements, buys nothing testable
	// here — interning correctness depends only on content-addressing,
	// not on tree height — so balancing is elided; see DESIGN.md.
	left, right *Symbol
}

const numSymbolPartitions = 16

var symbolPartitions [numSymbolPartitions]*Symbol

// symbolTraits is assigned in init: its TypeName refers to MakeSymbol,
// which refers back to symbolTraits.
var symbolTraits *Traits

func init() {
	symbolTraits = &Traits{
		Eval:     symbolEval,
		Print:    symbolPrint,
		TypeName: func(Reference) Reference { return MakeSymbol("symbol") },
		Eq:       symbolEq,
		Eql:      symbolEq,
		AddRef:   symbolAddRef,
		Release:  symbolRelease,
	}
}

// SymbolEvalCount counts every symbol lookup performed through Eval,
// mirroring the original's symbol_eval_count statistic (surfaced by the
// CLI's --stats flag).
var SymbolEvalCount int

func symbolEq(a, b Reference) bool {
	return a.Payload.(*Symbol) == b.Payload.(*Symbol)
}

func symbolAddRef(r Reference) {
	s := r.Payload.(*Symbol)
	if s.rc == RCOverflow {
		return
	}
	s.rc++
}

func symbolRelease(r Reference) {
	s := r.Payload.(*Symbol)
	if s.rc == RCOverflow {
		return
	}
	s.rc--
	if s.rc == 0 {
		removeFromPartition(s)
	}
}

func symbolEval(instance, _ Reference) Reference {
	s := instance.Payload.(*Symbol)
	SymbolEvalCount++
	if len(s.bindings) == 0 {
		ReportError(fmt.Sprintf("unbound symbol: %s", s.name))
		return Nil
	}
	return Clone(s.bindings[len(s.bindings)-1].value)
}

// Intern returns the unique Symbol for name, allocating it on first use
// and incrementing its reference count on every call (matching
// make_symbol, which always returns a live reference).
func Intern(name string) *Symbol {
	h := contentHash(name)
	part := int(h % numSymbolPartitions)
	root := &symbolPartitions[part]

	node := *root
	var parent *Symbol
	less := false
	for node != nil {
		switch {
		case name == node.name:
			if node.rc != RCOverflow {
				node.rc++
			}
			return node
		case name < node.name:
			parent, node, less = node, node.left, true
		default:
			parent, node, less = node, node.right, false
		}
	}

	sym := &Symbol{name: name, hash: h, rc: 1}
	switch {
	case parent == nil:
		*root = sym
	case less:
		parent.left = sym
	default:
		parent.right = sym
	}
	return sym
}

// MakeSymbol returns a Reference wrapping the interned symbol named name.
func MakeSymbol(name string) Reference {
	return Reference{Traits: symbolTraits, Payload: Intern(name)}
}

// IsSymbol reports whether r is a symbol value.
func IsSymbol(r Reference) bool { return r.Traits == symbolTraits }

// SymbolName returns r's underlying name. Panics if r is not a symbol;
// callers must check IsSymbol first.
func SymbolName(r Reference) string { return r.Payload.(*Symbol).name }

func removeFromPartition(target *Symbol) {
	part := int(target.hash % numSymbolPartitions)
	symbolPartitions[part] = deleteNode(symbolPartitions[part], target.name)
}

// deleteNode removes the node keyed by name from an unbalanced BST,
// standard two-child replace-with-in-order-successor deletion. The
// successor node itself is relinked into the removed node's place, so
// every *Symbol keeps its own name.
func deleteNode(root *Symbol, name string) *Symbol {
	if root == nil {
		return nil
	}
	switch {
	case name < root.name:
		root.left = deleteNode(root.left, name)
		return root
	case name > root.name:
		root.right = deleteNode(root.right, name)
		return root
	default:
		if root.left == nil {
			return root.right
		}
		if root.right == nil {
			return root.left
		}
		succParent := root
		succ := root.right
		for succ.left != nil {
			succParent = succ
			succ = succ.left
		}
		if succParent != root {
			succParent.left = succ.right
			succ.right = root.right
		}
		succ.left = root.left
		root.left, root.right = nil, nil
		return succ
	}
}

func symbolPrint(r Reference, w io.Writer) {
	s := r.Payload.(*Symbol)
	if isSafeSymbolName(s.name) {
		fmt.Fprint(w, s.name)
		return
	}
	fmt.Fprint(w, "|")
	writeEscaped(w, s.name)
	fmt.Fprint(w, "|")
}

// safeSymbolChars is the extra punctuation §6 allows unquoted, beyond
// letters and (after the first character) digits.
const safeSymbolChars = "_-+*/%^$!&=<>?~@:;"

func isSafeSymbolName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isAlpha(c) || strings.IndexByte(safeSymbolChars, c) >= 0 {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// --- binding-stack mutation (§4.3) ---

// findBinding returns the index of the binding with the greatest
// frameIndex <= startFrame, or -1 if none exists.
func (s *Symbol) findBinding(startFrame int) int {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].frameIndex <= startFrame {
			return i
		}
	}
	return -1
}

// Let inserts or replaces the binding at frame, preserving the
// ascending-by-frame sort order (§4.3's symbol_let).
func (s *Symbol) Let(value Reference, frame int) {
	i := s.findBinding(frame)
	if i < 0 {
		s.bindings = append([]binding{{value: value, frameIndex: frame}}, s.bindings...)
		return
	}
	if s.bindings[i].frameIndex == frame {
		s.bindings[i].value = value
		return
	}
	// i's frame < frame: insert immediately after i.
	s.bindings = append(s.bindings, binding{})
	copy(s.bindings[i+2:], s.bindings[i+1:])
	s.bindings[i+1] = binding{value: value, frameIndex: frame}
}

// Set overwrites the binding with the greatest frame <= startFrame.
// Reports an error and does nothing if no such binding exists
// (symbol_set's "attempting to rebind an unbound symbol").
func (s *Symbol) Set(value Reference, startFrame int) {
	i := s.findBinding(startFrame)
	if i < 0 {
		ReportError(fmt.Sprintf("attempting to set unbound symbol: %s", s.name))
		return
	}
	s.bindings[i].value = value
}

// Unset removes the binding at exactly frame, if present; otherwise a
// no-op (symbol_unset).
func (s *Symbol) Unset(frame int) {
	i := s.findBinding(frame)
	if i < 0 || s.bindings[i].frameIndex != frame {
		return
	}
	s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
}

// HasBinding reports whether s currently has any binding at all (an empty
// binding stack is the "unbound symbol" condition in §7).
func (s *Symbol) HasBinding() bool { return len(s.bindings) > 0 }

// TopBinding returns s's currently visible value. Callers must check
// HasBinding first.
func (s *Symbol) TopBinding() Reference { return s.bindings[len(s.bindings)-1].value }
