package corelib

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cwbudde/go-smalisp/internal/lisp"
)

func registerDomain(env lisp.Reference) {
	def(env, "strcoll", fnStrcoll)
	def(env, "gc-stats", fnGCStats)
}

var collator = collate.New(language.Und)

// fnStrcoll locale-aware compares two strings, returning -1, 0 or 1
// (§4.11): a domain-stack addition beyond the original's byte-wise
// string comparisons, exercising the collation library the rest of the
// example pack carries for text-sensitive comparisons.
func fnStrcoll(args, env lisp.Reference) lisp.Reference {
	a := nthEval(args, env, 0)
	defer lisp.Release(a)
	b := nthEval(args, env, 1)
	defer lisp.Release(b)

	if !lisp.IsString(a) || !lisp.IsString(b) {
		lisp.ReportError("strcoll called with a non-string argument")
		return lisp.Nil
	}

	return lisp.MakeInteger(int64(collator.CompareString(lisp.StringValue(a), lisp.StringValue(b))))
}

// fnGCStats returns (live-count . root-count), a cons pair exposing the
// collector's internal counters for diagnostics (§4.11).
func fnGCStats(_, _ lisp.Reference) lisp.Reference {
	live := lisp.MakeInteger(int64(lisp.LiveObjectCount()))
	roots := lisp.MakeInteger(int64(lisp.RootObjectCount()))
	result := lisp.MakeCons(live, roots)
	lisp.Release(live)
	lisp.Release(roots)
	return result
}
