package lisp

import (
	"io"

	"github.com/cwbudde/go-smalisp/internal/gcmem"
)

// consCell is a pair of references. A cons whose car and cdr are both nil
// is never allocated — MakeCons returns the Nil singleton instead (§3).
// consCell participates in the tracing collector because closures
// capturing environments that bind lists of themselves are exactly the
// cycle the spec's GC exists to break.
type consCell struct {
	gcmem.Header
	car, cdr Reference
}

// consTraits is assigned in init: consEval calls MakeCons, which refers
// back to consTraits.
var consTraits *Traits

func init() {
	consTraits = &Traits{
		Eval:     consEval,
		Print:    consPrint,
		TypeName: func(Reference) Reference { return MakeSymbol("cons") },
		Eq:       consEq,
		Eql:      consEql,
		AddRef:   consAddRef,
		Release:  consRelease,
	}
}

func consAddRef(r Reference)  { gcmem.AddRef(r.Payload.(*consCell)) }
func consRelease(r Reference) { gcmem.Release(r.Payload.(*consCell)) }

func (c *consCell) GCMark() {
	markRef(c.car)
	markRef(c.cdr)
}

func (c *consCell) GCReleaseRefs() {
	Release(c.car)
	Release(c.cdr)
	c.car, c.cdr = Nil, Nil
}

func (c *consCell) GCFreeMem() {}

// markRef marks r's heap payload reachable, if it has one. Atoms that
// never carry a gcmem.Node payload (integers, reals, strings, symbols)
// are simply not markable and the type assertion below is skipped for
// them via the ok form.
func markRef(r Reference) {
	if IsNil(r) {
		return
	}
	if n, ok := r.Payload.(gcmem.Node); ok {
		gcmem.Mark(n)
	}
}

// IsCons reports whether r is a (non-nil) cons cell.
func IsCons(r Reference) bool { return r.Traits == consTraits }

// MakeCons returns the nil singleton when both car and cdr are nil (§3);
// otherwise a fresh pair with both fields' counts incremented.
func MakeCons(car, cdr Reference) Reference {
	if IsNil(car) && IsNil(cdr) {
		return Nil
	}
	c := &consCell{car: Clone(car), cdr: Clone(cdr)}
	gcmem.Register(c)
	return Reference{Traits: consTraits, Payload: c}
}

// Car returns the cons's head, or Nil if r is not a cons (no error, §4.4).
func Car(r Reference) Reference {
	if !IsCons(r) {
		return Nil
	}
	return Clone(r.Payload.(*consCell).car)
}

// Cdr returns the cons's tail, or Nil if r is not a cons.
func Cdr(r Reference) Reference {
	if !IsCons(r) {
		return Nil
	}
	return Clone(r.Payload.(*consCell).cdr)
}

// Cadr, Caddr, Caar and Cadar are the obvious compositions (§4.4).
func Cadr(r Reference) Reference  { return carOf(Cdr(r)) }
func Caddr(r Reference) Reference { return carOf(Cdr(Cdr(r))) }
func Caar(r Reference) Reference  { return carOf(Car(r)) }
func Cadar(r Reference) Reference { return Cadr(Car(r)) }

// carOf is Car without the extra Clone a direct Car(Cdr(r)) would need;
// the intermediate Cdr(r) is already a fresh reference we own and must
// release once Car has taken its own.
func carOf(r Reference) Reference {
	result := Car(r)
	Release(r)
	return result
}

// List builds a proper list from the given references, left to right.
func List(refs ...Reference) Reference {
	result := Nil
	for i := len(refs) - 1; i >= 0; i-- {
		next := MakeCons(refs[i], result)
		Release(result)
		result = next
	}
	return result
}

// ListToSlice collects a proper (or improper) list's elements into a
// slice; an improper tail is returned separately so callers can detect
// dotted lists (e.g. parameter-list binding).
func ListToSlice(r Reference) (elems []Reference, tail Reference) {
	cur := Clone(r)
	for IsCons(cur) {
		elems = append(elems, Car(cur))
		next := Cdr(cur)
		Release(cur)
		cur = next
	}
	tail = cur
	return elems, tail
}

func consEq(a, b Reference) bool {
	return a.Payload.(*consCell) == b.Payload.(*consCell)
}

func consEql(a, b Reference) bool {
	ac, bc := a.Payload.(*consCell), b.Payload.(*consCell)
	return Eql(ac.car, bc.car) && Eql(ac.cdr, bc.cdr)
}

func consEval(instance, context Reference) Reference {
	head := Car(instance)
	defer Release(head)

	switch {
	case IsNil(head):
		ReportError("trying to evaluate a cons with a nil car")
		return Nil
	case head.Traits.Execute != nil:
		args := Cdr(instance)
		defer Release(args)
		return head.Traits.Execute(head, args, context)
	case head.Traits.Eval != nil:
		// The head is itself an expression (e.g. a cons computing a
		// closure); evaluate it once and retry application with the result.
		newHead := Eval(head, context)
		tail := Cdr(instance)
		newCons := MakeCons(newHead, tail)
		Release(newHead)
		Release(tail)
		defer Release(newCons)
		return Eval(newCons, context)
	default:
		ReportError("trying to evaluate a cons with a non-executable, non-evaluable car")
		return Nil
	}
}

// consPrint emits "(e1 e2 ... en)" for a proper list and
// "(e1 ... en . tail)" for an improper one (§4.4, §6).
func consPrint(r Reference, w io.Writer) {
	io.WriteString(w, "(")
	cur := r
	first := true
	for {
		c := cur.Payload.(*consCell)
		if !first {
			io.WriteString(w, " ")
		}
		first = false
		print1(c.car, w)

		switch {
		case IsNil(c.cdr):
			cur = Reference{}
		case IsCons(c.cdr):
			cur = c.cdr
			continue
		default:
			io.WriteString(w, " . ")
			print1(c.cdr, w)
			cur = Reference{}
		}
		break
	}
	io.WriteString(w, ")")
}
