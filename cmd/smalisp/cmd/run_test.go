package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-smalisp/internal/corelib"
)

// resetFlags restores the package-level flag variables run() reads, so
// tests don't leak state into each other via cobra's shared globals.
func resetFlags(t *testing.T) {
	t.Helper()
	savedOutput, savedTrace, savedQuiet, savedStats := outputPath, traceFilePath, quiet, stats
	outputPath, traceFilePath, quiet, stats = "", "", false, false
	corelib.ResetExitRequested()
	t.Cleanup(func() {
		outputPath, traceFilePath, quiet, stats = savedOutput, savedTrace, savedQuiet, savedStats
		corelib.ResetExitRequested()
	})
}

func TestRunEvaluatesScriptFileToOutputFile(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "script.lisp")
	if err := os.WriteFile(script, []byte("(+ 1 2)\n"), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	out := filepath.Join(dir, "out.txt")
	outputPath = out

	if err := run([]string{script}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(got) != "3\n" {
		t.Fatalf("expected output file to contain \"3\\n\", got %q", got)
	}
}

func TestRunQuietModeSuppressesOutput(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "script.lisp")
	if err := os.WriteFile(script, []byte("(+ 1 2)\n"), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	out := filepath.Join(dir, "out.txt")
	outputPath = out
	quiet = true

	if err := run([]string{script}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no output in quiet mode, got %q", got)
	}
}

func TestRunWithStatsWritesCountersToTraceFile(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "script.lisp")
	if err := os.WriteFile(script, []byte("(+ 1 2)\n"), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	outputPath = filepath.Join(dir, "out.txt")
	traceFilePath = filepath.Join(dir, "trace.txt")
	stats = true

	if err := run([]string{script}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}

	trace, err := os.ReadFile(traceFilePath)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if len(trace) == 0 {
		t.Fatalf("expected stats counters to be written to the trace file")
	}
}

func TestRunReturnsErrorOnMissingScript(t *testing.T) {
	resetFlags(t)

	if err := run([]string{filepath.Join(t.TempDir(), "missing.lisp")}); err == nil {
		t.Fatalf("expected run to fail for a nonexistent script file")
	}
}
