package corelib

import "github.com/cwbudde/go-smalisp/internal/lisp"

func registerGC(env lisp.Reference) {
	def(env, "gc-collect", fnGCCollect)
}

// fnGCCollect runs one mark-sweep cycle on demand (slfe_gc_collect); the
// collector also runs automatically once per top-level form (§6).
func fnGCCollect(_, _ lisp.Reference) lisp.Reference {
	lisp.CollectGarbage()
	return lisp.Nil
}
