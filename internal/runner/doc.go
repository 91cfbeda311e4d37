// Package runner provides the concurrent fan-out/fan-in engine for
// sitecheck.
//
// This package is internal to sitecheck. It distributes a URL list across a
// bounded pool of worker goroutines via a shared pull-based queue, runs a
// caller-supplied check function for each URL, and gathers exactly one
// result per URL regardless of worker count or failure pattern. Per-URL
// panics are recovered and converted into error results so a single bad URL
// never drops its siblings.
package runner
