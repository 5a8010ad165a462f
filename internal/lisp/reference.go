package lisp

// Reference is the uniform tagged value every part of the interpreter
// passes around: a traits pointer plus a payload. A Reference with a nil
// Traits is nil — invariant 5 (§3) requires this be the zero value, which
// Go's Reference{} already is, so "the nil reference" needs no
// constructor at all.
type Reference struct {
	Traits  *Traits
	Payload any
}

// Nil is the singleton nil reference.
var Nil = Reference{}

// IsNil reports whether r is the nil reference.
func IsNil(r Reference) bool { return r.Traits == nil }

// Clone increments r's reference count (if it has one) and returns r
// unchanged, mirroring clone_ref: "returns the new reference, like a
// constructor for a ref type in C++".
func Clone(r Reference) Reference {
	if r.Traits != nil && r.Traits.AddRef != nil {
		r.Traits.AddRef(r)
	}
	return r
}

// Release decrements r's reference count, if it has one. Every acquired
// Reference must be balanced by exactly one Release on every exit path.
func Release(r Reference) {
	if r.Traits != nil && r.Traits.Release != nil {
		r.Traits.Release(r)
	}
}

// Eq tests identity. Differing traits pointers (differing kinds) are
// never equal; two nil references are equal (reflexive per invariant 6).
func Eq(a, b Reference) bool {
	if a.Traits != b.Traits {
		return false
	}
	if a.Traits == nil {
		return true
	}
	if a.Traits.Eq == nil {
		return false
	}
	return a.Traits.Eq(a, b)
}

// Eql tests structural equality, recursing into compound values. eq(a,b)
// implies eql(a,b) because every Eq implementation below is also a valid
// witness of structural equality for its own kind; compound kinds (cons,
// closures) additionally recurse via their own Eql.
func Eql(a, b Reference) bool {
	if a.Traits != b.Traits {
		return false
	}
	if a.Traits == nil {
		return true
	}
	if a.Traits.Eql == nil {
		return false
	}
	return a.Traits.Eql(a, b)
}

// TypeName returns a symbol naming r's kind, or Nil if r has no
// TypeName trait (which only the nil reference itself lacks).
func TypeName(r Reference) Reference {
	if r.Traits == nil || r.Traits.TypeName == nil {
		return Nil
	}
	return r.Traits.TypeName(r)
}

// IsCallable reports whether r carries an Execute trait.
func IsCallable(r Reference) bool {
	return r.Traits != nil && r.Traits.Execute != nil
}
