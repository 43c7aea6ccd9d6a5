package vulnsweep

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagVerbose       bool
	flagNoColor       bool
	flagThreads       int
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the vulnsweep CLI.
var rootCmd = &cobra.Command{
	Use:           "vulnsweep",
	Short:         "Scan source trees for vulnerable code patterns",
	Long:          "vulnsweep scans a source tree for security-relevant code patterns and reports categorized findings with low noise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the vulnsweep CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log skipped files and other scan details")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
