package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/kwren/sitecheck/internal/probe"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// okCheck is a stub CheckFunc that always reports a 200 response.
func okCheck(_ context.Context, _ string) probe.Outcome {
	return probe.Outcome{StatusCode: 200, Attempts: 1, CheckedAt: time.Now()}
}

// makeURLs generates n distinct fake URLs.
func makeURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://site-%d.test", i)
	}
	return urls
}

// TestRunner_OneResultPerURL verifies that for a range of list sizes and
// worker counts, the pool returns exactly one result per input URL with the
// URL multiset preserved, regardless of collection order.
func TestRunner_OneResultPerURL(t *testing.T) {
	cases := []struct {
		name    string
		urls    int
		workers int
	}{
		{"single url single worker", 1, 1},
		{"fewer urls than workers", 3, 8},
		{"more urls than workers", 50, 4},
		{"equal urls and workers", 4, 4},
		{"many urls single worker", 25, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			urls := makeURLs(tc.urls)

			pool := New(okCheck, tc.workers, nil, testLogger())
			results := pool.Run(context.Background(), urls)

			if len(results) != tc.urls {
				t.Fatalf("expected %d results, got %d", tc.urls, len(results))
			}

			// compare as unordered multisets keyed by URL
			counts := make(map[string]int, len(urls))
			for _, r := range results {
				counts[r.URL]++
			}
			for _, url := range urls {
				if counts[url] != 1 {
					t.Errorf("expected exactly 1 result for %s, got %d", url, counts[url])
				}
			}
		})
	}
}

// TestRunner_EmptyInput verifies that an empty URL list yields an empty,
// non-nil result slice without invoking the check function.
func TestRunner_EmptyInput(t *testing.T) {
	var calls atomic.Int64
	check := func(ctx context.Context, url string) probe.Outcome {
		calls.Add(1)
		return okCheck(ctx, url)
	}

	pool := New(check, 4, nil, testLogger())
	results := pool.Run(context.Background(), nil)

	if results == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
	if calls.Load() != 0 {
		t.Errorf("expected no check calls, got %d", calls.Load())
	}
}

// TestRunner_PanicIsolation verifies that a check panicking on one URL does
// not drop that URL's result or any sibling results in the same worker's
// queue.
func TestRunner_PanicIsolation(t *testing.T) {
	urls := makeURLs(10)
	const victim = "https://site-3.test"

	check := func(ctx context.Context, url string) probe.Outcome {
		if url == victim {
			panic("simulated check crash")
		}
		return okCheck(ctx, url)
	}

	// a single worker guarantees the panicking URL shares a queue with
	// every other URL
	pool := New(check, 1, nil, testLogger())
	results := pool.Run(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}

	byURL := make(map[string]Result, len(results))
	for _, r := range results {
		byURL[r.URL] = r
	}

	crashed, ok := byURL[victim]
	if !ok {
		t.Fatalf("expected a result for panicking URL %s", victim)
	}
	if crashed.Outcome.OK() {
		t.Error("expected panicking URL to carry an error outcome")
	}
	if crashed.Outcome.Err == nil || !strings.Contains(crashed.Outcome.Err.Error(), "check panic") {
		t.Errorf("expected panic error with correlation ID, got %v", crashed.Outcome.Err)
	}

	for _, url := range urls {
		if url == victim {
			continue
		}
		if r := byURL[url]; !r.Outcome.OK() {
			t.Errorf("sibling %s unexpectedly failed: %v", url, r.Outcome.Err)
		}
	}
}

// TestRunner_ErrorOutcomesAreDelivered verifies that failed checks are
// collected like successful ones, not filtered out.
func TestRunner_ErrorOutcomesAreDelivered(t *testing.T) {
	urls := makeURLs(6)
	sentinel := errors.New("connection refused")

	check := func(_ context.Context, url string) probe.Outcome {
		if strings.HasSuffix(url, "0.test") || strings.HasSuffix(url, "1.test") {
			return probe.Outcome{Err: sentinel, Attempts: 1, CheckedAt: time.Now()}
		}
		return probe.Outcome{StatusCode: 503, Attempts: 1, CheckedAt: time.Now()}
	}

	pool := New(check, 3, nil, testLogger())
	results := pool.Run(context.Background(), urls)

	failures := 0
	for _, r := range results {
		if !r.Outcome.OK() {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("expected 2 failed results, got %d", failures)
	}
}

// TestRunner_BoundedConcurrency verifies that no more than the configured
// number of checks run simultaneously.
func TestRunner_BoundedConcurrency(t *testing.T) {
	const workers = 3

	var active, peak atomic.Int64
	check := func(ctx context.Context, url string) probe.Outcome {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		active.Add(-1)
		return okCheck(ctx, url)
	}

	pool := New(check, workers, nil, testLogger())
	pool.Run(context.Background(), makeURLs(20))

	if got := peak.Load(); got > workers {
		t.Errorf("expected at most %d concurrent checks, observed %d", workers, got)
	}
}

// TestRunner_RateLimiter verifies that a configured limiter spaces out
// probe starts.
func TestRunner_RateLimiter(t *testing.T) {
	const perSecond = 20 // 50ms between starts

	pool := New(okCheck, 4, rate.NewLimiter(rate.Limit(perSecond), 1), testLogger())

	start := time.Now()
	pool.Run(context.Background(), makeURLs(5))
	elapsed := time.Since(start)

	// first start is immediate, the remaining 4 are spaced 50ms apart
	if min := 150 * time.Millisecond; elapsed < min {
		t.Errorf("expected run to take at least %v under rate limiting, took %v", min, elapsed)
	}
}
