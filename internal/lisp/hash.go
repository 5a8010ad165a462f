package lisp

import "hash/fnv"

// contentHash is the cached hash used both by strings (per §3, "cached
// hash") and by the symbol forest's partitioning (§4.3, "hash-partitioned
// trees"). FNV-1a is a reasonable, allocation-free stand-in for whatever
// ad hoc hash the original's string_t used; only its statistical spread
// matters, never its exact bit pattern.
func contentHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
