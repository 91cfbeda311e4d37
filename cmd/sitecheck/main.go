// Package main is the entry point for the sitecheck CLI.
//
// sitecheck can be used either as a library (SDK) or as a standalone binary
// that reads a plain-text URL list and writes a JSON status report. This
// CLI provides the standalone binary approach.
//
// Usage:
//
//	sitecheck check -f urls.txt            # Check every URL in the list
//	sitecheck check -f urls.txt -w 8       # ...with 8 workers
//	sitecheck version                      # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "sitecheck",
	Short: "A concurrent website liveness checker",
	Long: `sitecheck checks the liveness of a list of websites.

It reads a plain-text file with one URL per line (blank lines and
'#' comments are ignored), probes every URL concurrently with bounded
retries, prints one line per result, and writes the full result set
as a JSON array.

Quick start:
  1. Create a URL list (urls.txt), one URL per line
  2. Run: sitecheck check -f urls.txt
  3. Inspect status.json

A check counts as successful whenever an HTTP response is received,
whatever the status code; only transport failures (DNS, connect, TLS,
timeout) are errors.`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this sitecheck binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitecheck %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
