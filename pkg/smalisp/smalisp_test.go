package smalisp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/go-smalisp/internal/corelib"
	"github.com/cwbudde/go-smalisp/internal/lisp"
	"github.com/cwbudde/go-smalisp/internal/repl"
)

// printedValues renders every result to its read-compatible text, the
// shape go-cmp compares against an expected slice below.
func printedValues(values []lisp.Reference) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = lisp.Sprint(v)
	}
	return out
}

func TestEvalReturnsEveryTopLevelValueInOrder(t *testing.T) {
	e := New()
	result := e.Eval(`(+ 1 2) (* 3 4) (quote (a b c))`)
	defer func() {
		for _, v := range result.Values {
			lisp.Release(v)
		}
	}()

	want := []string{"3", "12", "(a b c)"}
	if diff := cmp.Diff(want, printedValues(result.Values)); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestEvalReturnsLastFormResult(t *testing.T) {
	e := New()
	result := e.Eval("(+ 1 2) (* 3 4)")
	defer func() {
		for _, v := range result.Values {
			lisp.Release(v)
		}
	}()

	if len(result.Values) != 2 {
		t.Fatalf("expected two top-level results, got %d", len(result.Values))
	}
	if result.Printed != "12" {
		t.Fatalf("expected the last form's printed value to be 12, got %q", result.Printed)
	}
}

func TestWithOutputRedirectsPrintPrimitive(t *testing.T) {
	var out bytes.Buffer
	e := New(WithOutput(&out))
	result := e.Eval(`(print "hello")`)
	defer func() {
		for _, v := range result.Values {
			lisp.Release(v)
		}
	}()

	if got := out.String(); got != "\"hello\"\n" {
		t.Fatalf("expected print to write to the configured output, got %q", got)
	}
}

func TestWithTraceSinkGatesDebugPrimitives(t *testing.T) {
	bare := New()
	result := bare.Eval("(exit)")
	defer func() {
		for _, v := range result.Values {
			lisp.Release(v)
		}
	}()
	if len(result.Values) == 0 || !lisp.IsNil(result.Values[0]) {
		t.Fatalf("expected exit to be unbound (and fail to nil) without a trace sink, got %v", result.Values)
	}
	corelib.ResetExitRequested()

	var trace bytes.Buffer
	traced := New(WithTraceSink(&trace))
	tr := traced.Eval("(exit)")
	defer func() {
		for _, v := range tr.Values {
			lisp.Release(v)
		}
		corelib.ResetExitRequested()
	}()
	if !corelib.ExitRequested() {
		t.Fatalf("expected exit to be callable once a trace sink is configured")
	}
}

func TestRegisterFunctionExposesGoClosure(t *testing.T) {
	e := New()
	e.RegisterFunction("host-double", func(args, env lisp.Reference) lisp.Reference {
		n := lisp.Car(args)
		defer lisp.Release(n)
		return lisp.MakeInteger(2 * lisp.IntegerValue(n))
	})

	result := e.Eval("(host-double 21)")
	defer func() {
		for _, v := range result.Values {
			lisp.Release(v)
		}
	}()
	if result.Printed != "42" {
		t.Fatalf("expected registered host function to produce 42, got %q", result.Printed)
	}
}

func TestRunDelegatesToREPL(t *testing.T) {
	e := New()
	var out bytes.Buffer
	stats := e.Run(strings.NewReader("(+ 1 1)\n"), &out, repl.Options{})

	if out.String() != "2\n" {
		t.Fatalf("expected Run to print 2, got %q", out.String())
	}
	if stats.LiveObjectCount < 0 {
		t.Fatalf("expected a non-negative live object count, got %d", stats.LiveObjectCount)
	}
}

func TestEnvReturnsUsableEnvironment(t *testing.T) {
	e := New()
	if !lisp.IsStack(e.Env()) {
		t.Fatalf("expected Env to return a stack reference")
	}
}
