package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "javaseis",
	Short: "JavaSeis dataset inspection and maintenance tool",
	Long: `javaseis is a command-line tool for creating, inspecting, copying,
and maintaining JavaSeis seismic dataset directories.

Commands:
  create       Create a new dataset
  info         Print a dataset's structural summary
  validate     Check a dataset's extent and header invariants
  copy         Copy one dataset's frames into a new dataset
  remove       Delete a dataset's extents and metadata
  dump-header  Print one frame's header records`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose flag (no command changes its output for it)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (every command prints plain text regardless of it)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
