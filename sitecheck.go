package sitecheck

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/time/rate"

	"github.com/kwren/sitecheck/internal/probe"
	"github.com/kwren/sitecheck/internal/runner"
)

const (
	defaultWorkers    = 4
	defaultTimeout    = 3 * time.Second
	defaultRetries    = 0
	defaultRetryDelay = 100 * time.Millisecond
)

// Checker is the main orchestrator for concurrent website liveness checks.
//
// Checker wires the probing, retry, and worker-pool layers together. It is
// created with [New] using functional options and is immutable afterwards,
// so a single Checker may be reused for multiple runs and shared between
// goroutines.
//
// The typical lifecycle is:
//
//	c, err := sitecheck.New(
//	    sitecheck.WithWorkers(8),
//	    sitecheck.WithTimeout(5 * time.Second),
//	)
//	if err != nil {
//	    slog.Error("failed to create checker", "error", err)
//	    os.Exit(1)
//	}
//
//	results := c.Run(ctx, urls) // blocks until every URL is resolved
type Checker struct {
	workers         int
	timeout         time.Duration
	retries         int
	retryDelay      time.Duration
	rateLimit       float64
	logger          *slog.Logger
	attemptListener AttemptListener
}

// New creates a [Checker] with the given options.
//
// All options have defaults matching a conservative one-shot run:
//   - Workers: 4
//   - Per-attempt timeout: 3 seconds
//   - Retries: 0 (one attempt per URL)
//   - Retry delay: 100 milliseconds
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		workers:    defaultWorkers,
		timeout:    defaultTimeout,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// options validate on the way in; re-check the assembled values so a
	// future option cannot leave the Checker in an inconsistent state
	if err := (validation.Errors{
		"workers": validation.Validate(cfg.workers, validation.Required, validation.Min(1)),
		"timeout": validation.Validate(int64(cfg.timeout), validation.Required, validation.Min(int64(1))),
		"retries": validation.Validate(cfg.retries, validation.Min(0)),
	}).Filter(); err != nil {
		return nil, err
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		workers:         cfg.workers,
		timeout:         cfg.timeout,
		retries:         cfg.retries,
		retryDelay:      cfg.retryDelay,
		rateLimit:       cfg.rateLimit,
		logger:          logger,
		attemptListener: cfg.attemptListener,
	}, nil
}

// Run checks every URL in urls and returns the complete result set.
//
// Run blocks until every URL has been resolved, including all retries;
// there is no partial delivery. Exactly one [Result] is returned per input
// URL. The order of the returned slice is unspecified — fan-in from
// concurrent workers does not preserve input order, so callers should key
// results by URL.
//
// ctx bounds the run as a whole: cancelling it makes remaining probes fail
// fast with a context error rather than dropping them, preserving the
// one-result-per-URL contract. An empty urls slice returns an empty,
// non-nil slice without doing any network I/O.
func (c *Checker) Run(ctx context.Context, urls []string) []Result {
	client := probe.NewClient()
	defer client.Close()

	retrier := probe.NewRetrier(
		client,
		c.timeout,
		c.retries,
		c.retryDelay,
		probe.AttemptListener(c.attemptListener),
	)

	var limiter *rate.Limiter
	if c.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.rateLimit), 1)
	}

	pool := runner.New(retrier.Check, c.workers, limiter, c.logger)

	c.logger.Info("starting checks",
		"urls", len(urls),
		"workers", c.workers,
		"timeout", c.timeout.String(),
		"retries", c.retries,
	)

	raw := pool.Run(ctx, urls)

	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = Result{
			URL:        r.URL,
			StatusCode: r.Outcome.StatusCode,
			Err:        r.Outcome.Err,
			Attempts:   r.Outcome.Attempts,
			Elapsed:    r.Outcome.Elapsed,
			CheckedAt:  r.Outcome.CheckedAt,
		}
	}

	c.logger.Info("all checks finished", "results", len(results))
	return results
}
