package sitecheck

import "time"

// Result holds the outcome of checking a single website.
//
// Result is immutable after creation. Exactly one of StatusCode and Err is
// meaningful: Err is nil whenever an HTTP response was received, in which
// case StatusCode carries the response code. Any received code — including
// 4xx and 5xx — counts as a completed check; this models "is the site
// reachable" rather than "is the site healthy". Callers wanting stricter
// success criteria classify StatusCode themselves.
type Result struct {
	// URL is the probed address, exactly as supplied to [Checker.Run].
	URL string

	// StatusCode is the HTTP status code of the completed exchange.
	// Zero if every attempt failed at the transport level.
	StatusCode int

	// Err is the transport error from the final attempt, set only when the
	// retry budget was exhausted without receiving a response.
	Err error

	// Attempts is the number of probe attempts made for this URL.
	Attempts int

	// Elapsed is the wall-clock time from the first attempt's start to the
	// final attempt's completion, including retry delays.
	Elapsed time.Duration

	// CheckedAt is the instant the final attempt completed.
	CheckedAt time.Time
}

// OK reports whether the check received an HTTP response.
func (r Result) OK() bool {
	return r.Err == nil
}

// AttemptListener is invoked at the start of every probe attempt.
//
// attempt is 1-based and counts attempts for that URL only. Listeners are
// called synchronously from worker goroutines and must be safe for
// concurrent use.
type AttemptListener func(url string, attempt int)
