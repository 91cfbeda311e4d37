package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// flakyServer returns a test server that drops the first `failures`
// connections mid-request, producing transport errors, and answers 200
// afterwards.
func flakyServer(t *testing.T, failures int) *httptest.Server {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= int64(failures) {
			// hijack and close the connection so the client sees a
			// transport error instead of an HTTP response
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("server does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack failed: %v", err)
			}
			_ = conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	return server
}

// deadServer returns a URL that refuses all connections.
func deadServer() string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	return url
}

// TestRetrier_FirstAttemptSucceeds verifies that a healthy target is probed
// exactly once regardless of the retry budget.
func TestRetrier_FirstAttemptSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()

	retrier := NewRetrier(client, time.Second, 5, 10*time.Millisecond, nil)
	out := retrier.Check(context.Background(), server.URL)

	if !out.OK() {
		t.Fatalf("expected success, got error: %v", out.Err)
	}
	if out.StatusCode != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", out.StatusCode)
	}
	if out.Attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", out.Attempts)
	}
	if out.CheckedAt.IsZero() {
		t.Error("expected CheckedAt to be set")
	}
}

// TestRetrier_SucceedsOnSecondAttempt verifies that one transport failure
// followed by a response yields success after exactly 2 attempts, and that
// the cumulative elapsed time includes at least one retry delay.
func TestRetrier_SucceedsOnSecondAttempt(t *testing.T) {
	server := flakyServer(t, 1)
	defer server.Close()

	client := NewClient()
	defer client.Close()

	const delay = 50 * time.Millisecond
	retrier := NewRetrier(client, time.Second, 3, delay, nil)
	out := retrier.Check(context.Background(), server.URL)

	if !out.OK() {
		t.Fatalf("expected success after retry, got error: %v", out.Err)
	}
	if out.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", out.StatusCode)
	}
	if out.Attempts != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", out.Attempts)
	}
	if out.Elapsed < delay {
		t.Errorf("expected elapsed >= retry delay %v, got %v", delay, out.Elapsed)
	}
}

// TestRetrier_Exhaustion verifies that a target that always fails is probed
// exactly retries+1 times and surfaces the last transport error.
func TestRetrier_Exhaustion(t *testing.T) {
	url := deadServer()

	client := NewClient()
	defer client.Close()

	const retries = 3
	var attempts atomic.Int64
	listener := func(string, int) { attempts.Add(1) }

	retrier := NewRetrier(client, time.Second, retries, time.Millisecond, listener)
	out := retrier.Check(context.Background(), url)

	if out.OK() {
		t.Fatal("expected exhaustion, got success")
	}
	if out.Err == nil {
		t.Fatal("expected last error to be surfaced")
	}
	if out.Attempts != retries+1 {
		t.Errorf("expected %d attempts, got %d", retries+1, out.Attempts)
	}
	if got := attempts.Load(); got != retries+1 {
		t.Errorf("expected listener to observe %d attempts, got %d", retries+1, got)
	}
	if out.StatusCode != 0 {
		t.Errorf("expected zero status code on exhaustion, got %d", out.StatusCode)
	}
}

// TestRetrier_ZeroRetries verifies that a retry budget of zero means a
// single attempt, matching the default run configuration.
func TestRetrier_ZeroRetries(t *testing.T) {
	url := deadServer()

	client := NewClient()
	defer client.Close()

	retrier := NewRetrier(client, time.Second, 0, time.Millisecond, nil)
	out := retrier.Check(context.Background(), url)

	if out.OK() {
		t.Fatal("expected failure, got success")
	}
	if out.Attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", out.Attempts)
	}
}

// TestRetrier_ListenerOrder verifies that attempts for a single URL are
// strictly sequential and reported with 1-based numbering.
func TestRetrier_ListenerOrder(t *testing.T) {
	url := deadServer()

	client := NewClient()
	defer client.Close()

	var mu sync.Mutex
	var seen []int
	listener := func(_ string, attempt int) {
		mu.Lock()
		seen = append(seen, attempt)
		mu.Unlock()
	}

	retrier := NewRetrier(client, time.Second, 2, time.Millisecond, listener)
	retrier.Check(context.Background(), url)

	mu.Lock()
	defer mu.Unlock()
	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %d attempts, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("attempt %d: expected number %d, got %d", i, want[i], seen[i])
		}
	}
}

// TestRetrier_ContextCancelDuringDelay verifies that cancelling the context
// while the retrier sleeps stops the loop instead of burning the remaining
// retry budget.
func TestRetrier_ContextCancelDuringDelay(t *testing.T) {
	url := deadServer()

	client := NewClient()
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	retrier := NewRetrier(client, time.Second, 100, time.Minute, nil)

	done := make(chan Outcome, 1)
	go func() { done <- retrier.Check(ctx, url) }()

	select {
	case out := <-done:
		if out.OK() {
			t.Fatal("expected failure after cancellation")
		}
		if out.Attempts != 1 {
			t.Errorf("expected 1 attempt before cancellation, got %d", out.Attempts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retrier did not stop after context cancellation")
	}
}
