// Package sitecheck provides a concurrent, one-shot liveness checker for
// lists of websites.
//
// sitecheck is designed as an SDK-first library: a [Checker] is configured
// programmatically via the functional options pattern, runs a bounded pool
// of workers that probe every URL with per-attempt timeouts and bounded
// fixed-delay retries, and returns exactly one [Result] per URL. A cobra
// CLI (cmd/sitecheck) wraps the library for running from URL list files.
//
// # Quick Start
//
// Create a checker and run it over a URL list:
//
//	c, _ := sitecheck.New(sitecheck.WithWorkers(8))
//
//	results := c.Run(context.Background(), []string{
//	    "https://example.com",
//	    "https://api.example.com/health",
//	})
//	for _, r := range results {
//	    if r.OK() {
//	        fmt.Printf("[%s] %d (%s)\n", r.URL, r.StatusCode, r.Elapsed)
//	    } else {
//	        fmt.Printf("[%s] ERROR: %v (%s)\n", r.URL, r.Err, r.Elapsed)
//	    }
//	}
//
// # Configuration
//
// sitecheck uses the functional options pattern for configuration:
//
//	c, err := sitecheck.New(
//	    sitecheck.WithWorkers(16),
//	    sitecheck.WithTimeout(5 * time.Second),
//	    sitecheck.WithRetries(2),
//	    sitecheck.WithRetryDelay(100 * time.Millisecond),
//	    sitecheck.WithRateLimit(20),
//	)
//
// # Success Model
//
// A check succeeds whenever an HTTP response is received, whatever its
// status code; 4xx and 5xx responses prove the site is reachable. Only
// transport-level failures (DNS, connect, TLS, timeout) count as failures
// and consume retries. Consumers wanting stricter health semantics classify
// the returned status codes themselves.
//
// # Architecture
//
// sitecheck consists of several internal packages (under internal/):
//
//   - internal/probe: single-attempt HTTP probing and the bounded retry loop
//   - internal/runner: worker pool fan-out/fan-in with per-URL panic isolation
//   - internal/urlfile: URL list file parsing with comment filtering
//   - internal/report: console line rendering and JSON report persistence
//
// The internal packages are not part of the public API and may change
// without notice.
package sitecheck
