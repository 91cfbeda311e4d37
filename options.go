package sitecheck

import (
	"errors"
	"log/slog"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	workers         int
	timeout         time.Duration
	retries         int
	retryDelay      time.Duration
	rateLimit       float64
	logger          *slog.Logger
	attemptListener AttemptListener
}

// Option is a function that configures a [Checker] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithWorkers], [WithTimeout], [WithRetries],
// [WithRetryDelay], [WithRateLimit], [WithLogger], [WithAttemptListener].
type Option func(*checkerConfig) error

// WithWorkers sets the number of concurrent worker goroutines.
//
// Workers pull URLs from a shared queue one at a time, so the value bounds
// how many probe sequences run at once. Defaults to 4 if not specified.
//
// Example:
//
//	c, err := sitecheck.New(
//	    sitecheck.WithWorkers(16),
//	)
//
// Returns an error if the value is zero or negative.
func WithWorkers(n int) Option {
	return func(cfg *checkerConfig) error {
		if n <= 0 {
			return errors.New("worker count must be positive")
		}
		cfg.workers = n
		return nil
	}
}

// WithTimeout sets the timeout applied to each individual HTTP attempt.
//
// The timeout bounds a single attempt, not the whole retry sequence.
// Defaults to 3 seconds if not specified.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRetries sets how many additional attempts are made after a failed
// first attempt.
//
// A value of 0 (the default) means each URL is probed exactly once. With
// retries R, at most R+1 attempts are made per URL. Only transport
// failures are retried; any received HTTP status code ends the sequence.
//
// Returns an error if the value is negative.
func WithRetries(n int) Option {
	return func(cfg *checkerConfig) error {
		if n < 0 {
			return errors.New("retries cannot be negative")
		}
		cfg.retries = n
		return nil
	}
}

// WithRetryDelay sets the fixed sleep between probe attempts for the same
// URL.
//
// Defaults to 100 milliseconds. A zero delay retries immediately.
//
// Returns an error if the duration is negative.
func WithRetryDelay(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d < 0 {
			return errors.New("retry delay cannot be negative")
		}
		cfg.retryDelay = d
		return nil
	}
}

// WithRateLimit caps the rate at which probe sequences start, in URLs per
// second, shared across all workers.
//
// Use this to avoid hammering targets when checking large lists. A value of
// 0 (the default) disables rate limiting.
//
// Example:
//
//	c, err := sitecheck.New(
//	    sitecheck.WithWorkers(16),
//	    sitecheck.WithRateLimit(10), // at most 10 probe starts per second
//	)
//
// Returns an error if the value is negative.
func WithRateLimit(perSecond float64) Option {
	return func(cfg *checkerConfig) error {
		if perSecond < 0 {
			return errors.New("rate limit cannot be negative")
		}
		cfg.rateLimit = perSecond
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Checker.
//
// This allows SDK consumers to control where diagnostics are written and in
// what format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c, err := sitecheck.New(
//	    sitecheck.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithAttemptListener registers a function invoked at the start of every
// probe attempt.
//
// The listener receives the URL and the 1-based attempt number. It is
// called synchronously from worker goroutines, so it must be safe for
// concurrent use and must not block; long-running work should be
// dispatched to a separate goroutine.
//
// Example:
//
//	c, err := sitecheck.New(
//	    sitecheck.WithAttemptListener(func(url string, attempt int) {
//	        fmt.Printf("Attempt %d for %s\n", attempt, url)
//	    }),
//	)
//
// Nil listeners are silently ignored.
func WithAttemptListener(l AttemptListener) Option {
	return func(cfg *checkerConfig) error {
		if l == nil {
			return nil // no-op for nil listener (safe to call)
		}
		cfg.attemptListener = l
		return nil
	}
}
