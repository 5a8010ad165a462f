package lisp

import (
	"fmt"
	"io"
)

// stringVal is an immutable byte sequence with a cached hash and its own
// simple reference count. It is never registered with gcmem: a string
// holds no outgoing references, so it can never participate in a cycle,
// exactly as the original leaves string_type's gc_* trait slots empty.
type stringVal struct {
	data string
	hash uint64
	rc   byte
}

var stringTraits = &Traits{
	Print:    stringPrint,
	TypeName: func(Reference) Reference { return MakeSymbol("string") },
	Eq:       stringEq,
	Eql:      stringEq,
	AddRef:   stringAddRef,
	Release:  stringRelease,
}

func stringAddRef(r Reference) {
	s := r.Payload.(*stringVal)
	if s.rc == RCOverflow {
		return
	}
	s.rc++
}

func stringRelease(r Reference) {
	s := r.Payload.(*stringVal)
	if s.rc == RCOverflow {
		return
	}
	s.rc--
	// s.rc reaching 0 simply makes s unreachable for the Go garbage
	// collector; there is no pool or explicit free to perform.
}

func stringEq(a, b Reference) bool {
	return a.Payload.(*stringVal).data == b.Payload.(*stringVal).data
}

// RCOverflow mirrors gcmem.RCOverflow for the non-gcmem-tracked kinds
// (strings, symbols) that keep their own refcount byte.
const RCOverflow = 255

// MakeString returns a new string reference with refcount 1.
func MakeString(s string) Reference {
	return Reference{Traits: stringTraits, Payload: &stringVal{data: s, hash: contentHash(s), rc: 1}}
}

// IsString reports whether r is a string value.
func IsString(r Reference) bool { return r.Traits == stringTraits }

// StringValue returns r's underlying Go string. Panics if r is not a
// string; callers must check IsString first.
func StringValue(r Reference) string { return r.Payload.(*stringVal).data }

// stringPrint writes r double-quoted, escaping \0 \r \n \b \t \\ and any
// other non-graphic byte as \N (decimal), per §6.
func stringPrint(r Reference, w io.Writer) {
	fmt.Fprint(w, `"`)
	writeEscaped(w, r.Payload.(*stringVal).data)
	fmt.Fprint(w, `"`)
}

func writeEscaped(w io.Writer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case 0:
			fmt.Fprint(w, `\0`)
		case '\r':
			fmt.Fprint(w, `\r`)
		case '\n':
			fmt.Fprint(w, `\n`)
		case '\b':
			fmt.Fprint(w, `\b`)
		case '\t':
			fmt.Fprint(w, `\t`)
		case '\\':
			fmt.Fprint(w, `\\`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(w, `\%d`, c)
			} else {
				_, _ = w.Write([]byte{c})
			}
		}
	}
}
