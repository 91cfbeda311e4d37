package probe

import (
	"context"
	"time"
)

// Outcome is the terminal result of a retried probe sequence for one URL.
//
// Exactly one of StatusCode and Err is meaningful: a non-nil Err means the
// retry budget was exhausted without ever receiving an HTTP response, and
// carries the error from the final attempt. Otherwise StatusCode holds the
// code of the first completed exchange.
type Outcome struct {
	// StatusCode is the HTTP status code of the first successful exchange.
	// Zero when Err is non-nil.
	StatusCode int

	// Err is the transport error from the last attempt, set only when all
	// attempts failed.
	Err error

	// Attempts is the number of probe attempts made (1 to retries+1).
	Attempts int

	// Elapsed is the wall-clock time from the start of the first attempt to
	// the terminal state, including inter-attempt delays.
	Elapsed time.Duration

	// CheckedAt is the instant the final attempt completed.
	CheckedAt time.Time
}

// OK reports whether an HTTP response was received before retries ran out.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// AttemptListener is invoked at the start of every probe attempt.
//
// attempt is 1-based. Listeners are called synchronously from the probing
// goroutine and must be safe for concurrent use when the Retrier is shared
// across workers.
type AttemptListener func(url string, attempt int)

// Retrier wraps a [Client] with a bounded, fixed-delay retry loop.
//
// The retry policy is transport-success, not HTTP-success: any received
// status code (including 4xx/5xx) stops the loop immediately. Only
// transport failures are retried, up to the configured retry count, with a
// fixed sleep between attempts.
//
// A Retrier is immutable after construction and safe for concurrent use.
type Retrier struct {
	client   *Client
	timeout  time.Duration
	retries  int
	delay    time.Duration
	listener AttemptListener
}

// NewRetrier creates a Retrier issuing probes through client.
//
// timeout bounds each individual attempt. retries is the number of
// additional attempts after the first (0 means a single attempt). delay is
// the fixed sleep between attempts. listener may be nil.
func NewRetrier(client *Client, timeout time.Duration, retries int, delay time.Duration, listener AttemptListener) *Retrier {
	return &Retrier{
		client:   client,
		timeout:  timeout,
		retries:  retries,
		delay:    delay,
		listener: listener,
	}
}

// Check probes url until an HTTP response is received or the retry budget
// is exhausted, and returns the terminal [Outcome].
//
// Check makes at most retries+1 attempts, strictly sequentially. The
// inter-attempt sleep respects ctx: if the context is cancelled while
// waiting, the loop stops and the last attempt's error is surfaced. Elapsed
// spans the whole sequence including sleeps.
func (r *Retrier) Check(ctx context.Context, url string) Outcome {
	start := time.Now()

	var resp Response
	attempts := 0

	for {
		attempts++
		if r.listener != nil {
			r.listener(url, attempts)
		}

		resp = r.client.Fetch(ctx, url, r.timeout)
		if resp.OK() || attempts > r.retries {
			break
		}

		if !sleep(ctx, r.delay) {
			break
		}
	}

	out := Outcome{
		Attempts:  attempts,
		Elapsed:   time.Since(start),
		CheckedAt: time.Now(),
	}
	if resp.OK() {
		out.StatusCode = resp.StatusCode
	} else {
		out.Err = resp.Error
	}
	return out
}

// sleep waits for d or until ctx is cancelled, reporting whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
