package corelib

import (
	"io"
	"os"

	"github.com/cwbudde/go-smalisp/internal/reader"
)

// printSink and readSource back the print / read primitives; the CLI
// (§6) redirects them to the configured input/output files, mirroring
// the original's set_print_file / set_read_file.
var (
	printSink  io.Writer = os.Stdout
	readSource *reader.Reader
)

// SetPrintSink redirects the print primitive's output.
func SetPrintSink(w io.Writer) { printSink = w }

// SetReadSource redirects the read primitive's input. A single Reader is
// kept around so its push-back buffer persists across calls.
func SetReadSource(r io.Reader) { readSource = reader.New(r) }

func init() {
	SetReadSource(os.Stdin)
}
