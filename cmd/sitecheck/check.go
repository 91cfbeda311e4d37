package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwren/sitecheck"
	"github.com/kwren/sitecheck/internal/report"
	"github.com/kwren/sitecheck/internal/urlfile"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// checkCmd runs one check pass over a URL list file.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every URL in a list file",
	Long: `Check the liveness of every URL in a plain-text list file.

The command will:
  - Read the URL list (one URL per line, '#' comments and blanks ignored)
  - Probe every URL concurrently with per-attempt timeouts and retries
  - Print one result line per URL
  - Write the full result set as a JSON array

The run blocks until every URL (including retries) has been resolved.
Results are printed before the JSON file is written, so a failing write
never loses the computed outcomes.

Example:
  sitecheck check -f urls.txt
  sitecheck check -f urls.txt -o status.json -w 8 --retries 2`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("file", "f", "urls.txt", "path to the URL list file")
	checkCmd.Flags().StringP("output", "o", "status.json", "path to the JSON report file")
	checkCmd.Flags().IntP("workers", "w", 4, "number of concurrent workers")
	checkCmd.Flags().Duration("timeout", 3*time.Second, "timeout per HTTP attempt")
	checkCmd.Flags().Int("retries", 0, "additional attempts after a failed probe")
	checkCmd.Flags().Duration("retry-delay", 100*time.Millisecond, "fixed sleep between attempts")
	checkCmd.Flags().Float64("rate", 0, "max probe starts per second (0 = unlimited)")
	checkCmd.Flags().BoolP("verbose", "v", false, "enable info-level diagnostics on stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	output, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	retries, _ := cmd.Flags().GetInt("retries")
	retryDelay, _ := cmd.Flags().GetDuration("retry-delay")
	rateLimit, _ := cmd.Flags().GetFloat64("rate")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := newLogger(verbose)

	urls, err := urlfile.Read(file)
	if err != nil {
		return err
	}

	checker, err := sitecheck.New(
		sitecheck.WithWorkers(workers),
		sitecheck.WithTimeout(timeout),
		sitecheck.WithRetries(retries),
		sitecheck.WithRetryDelay(retryDelay),
		sitecheck.WithRateLimit(rateLimit),
		sitecheck.WithLogger(logger),
		sitecheck.WithAttemptListener(func(url string, attempt int) {
			fmt.Printf("Attempt %d for %s\n", attempt, url)
		}),
	)
	if err != nil {
		return fmt.Errorf("invalid check parameters: %w", err)
	}

	// cancel on SIGINT/SIGTERM; remaining probes fail fast but every URL
	// still gets a result
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Waiting for workers to complete...")
	results := checker.Run(ctx, urls)
	fmt.Println("All workers finished.")

	fmt.Println("\nWebsite Status Results:")
	fmt.Println()
	for _, r := range results {
		fmt.Println(report.Line(r))
	}

	if err := report.Write(output, results); err != nil {
		return err
	}

	fmt.Printf("\nWrote %d results to %s\n", len(results), output)
	return nil
}
