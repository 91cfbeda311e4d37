package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kwren/sitecheck/internal/probe"
)

// CheckFunc performs a full probe-and-retry sequence for one URL and
// returns its terminal outcome. Implementations must be safe for concurrent
// use; the runner calls them from multiple worker goroutines.
type CheckFunc func(ctx context.Context, url string) probe.Outcome

// Result pairs a probed URL with its outcome.
type Result struct {
	// URL is the probed address, exactly as supplied to [Runner.Run].
	URL string

	// Outcome is the terminal outcome of the retry sequence for URL.
	Outcome probe.Outcome
}

// Runner executes a [CheckFunc] over a URL list using a bounded worker
// pool.
//
// Runner uses a shared pull-based work queue rather than static per-worker
// chunking: workers pull one URL at a time, so a slow target occupies one
// worker instead of stranding a whole chunk behind it. The pool completes
// only after every URL has been resolved and every result collected.
//
// A Runner is immutable after construction and safe for concurrent use,
// though each Run call spawns its own workers.
type Runner struct {
	check   CheckFunc
	workers int
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Runner that resolves URLs with check using up to workers
// concurrent goroutines.
//
// limiter, when non-nil, gates the start of each URL's check sequence
// across all workers; pass nil for unlimited probing. logger is used for
// panic diagnostics; if nil, [slog.Default] is used.
func New(check CheckFunc, workers int, limiter *rate.Limiter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		check:   check,
		workers: workers,
		limiter: limiter,
		logger:  logger,
	}
}

// Run checks every URL and returns the complete result set.
//
// Exactly one Result is returned per input URL; the order of the returned
// slice is unspecified. Run blocks until all workers have finished, so the
// returned set is never partial. An empty URL list returns an empty,
// non-nil slice without spawning any workers.
//
// ctx cancellation does not drop URLs: in-flight and queued checks still
// produce a Result each (their probes fail fast against the cancelled
// context).
func (r *Runner) Run(ctx context.Context, urls []string) []Result {
	results := make([]Result, 0, len(urls))
	if len(urls) == 0 {
		return results
	}

	workers := r.workers
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan string, len(urls))
	// buffered to the full result count so workers never block on delivery
	out := make(chan Result, len(urls))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				if r.limiter != nil {
					// a cancelled context just means the probe itself will
					// fail fast; the URL still gets a result
					_ = r.limiter.Wait(ctx)
				}
				out <- r.safeCheck(ctx, url)
			}
		}()
	}

	for _, url := range urls {
		jobs <- url
	}
	close(jobs)

	// join-before-close: the results channel is closed only once every
	// producer has finished, so the drain below sees the complete set
	wg.Wait()
	close(out)

	for res := range out {
		results = append(results, res)
	}
	return results
}

// safeCheck runs the check function with panic recovery.
//
// If the check panics, the full stack trace is logged with a correlation ID
// and the URL is given an error outcome containing that ID, so one
// misbehaving check cannot take down the worker or drop the rest of its
// queue.
func (r *Runner) safeCheck(ctx context.Context, url string) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			r.logger.Error("check panic",
				"correlation_id", correlationID,
				"url", url,
				"panic", fmt.Sprintf("%v", rec),
				"stack", string(stack),
			)

			res = Result{
				URL: url,
				Outcome: probe.Outcome{
					Err:       fmt.Errorf("check panic (correlation_id: %s)", correlationID),
					CheckedAt: time.Now(),
				},
			}
		}
	}()
	return Result{URL: url, Outcome: r.check(ctx, url)}
}
