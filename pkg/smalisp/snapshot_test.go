package smalisp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-smalisp/internal/lisp"
)

// TestEvalOutputSnapshots captures the print primitive's transcript for a
// handful of representative programs, the way the teacher snapshots
// interpreter output across its fixture suite.
func TestEvalOutputSnapshots(t *testing.T) {
	programs := map[string]string{
		"arithmetic": `(print (+ 1 2 3))`,
		"closure":    `(let add (fn (n) (fn (m) (+ n m)))) (print ((add 2) 3))`,
		"cond":       `(print (cond ((eq 1 2) 'no) ((eq 1 1) 'yes)))`,
		"quasiquote": `(let x 5) (print (quasiquote (a (unquote x) c)))`,
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			e := New(WithOutput(&out))
			result := e.Eval(src)
			for _, v := range result.Values {
				lisp.Release(v)
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}
