package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "smalisp [file]",
	Short: "A small Lisp interpreter",
	Long: `smalisp reads and evaluates S-expressions one form at a time from a
file or standard input, printing each top-level result and running one
garbage-collection cycle in between.

With no arguments it reads from standard input; if that is a terminal
it prompts "> " before each form.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runScript,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write printed results to this file instead of stdout")
	rootCmd.Flags().StringVar(&traceFilePath, "trace-file", "", "sink for trace/no-trace/dump-stack and diagnostics")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress echoing top-level results")
	rootCmd.Flags().BoolVarP(&stats, "stats", "s", false, "dump evaluation counters to the trace sink at exit")
}
