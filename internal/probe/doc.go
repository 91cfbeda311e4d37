// Package probe provides the HTTP probing primitives for sitecheck.
//
// This package is internal to sitecheck and handles individual liveness
// probes against target URLs. It has two layers:
//
//   - [Client]: HTTP client wrapper with connection pooling and per-request
//     timeouts
//   - [Retrier]: a bounded retry loop over Client with a fixed inter-attempt
//     delay
//
// A probe is considered successful whenever an HTTP response is received,
// regardless of status code. Only transport-level failures (connection
// refused, DNS failure, TLS failure, timeout) count as probe failures and
// trigger retries. Classifying HTTP status codes as healthy or unhealthy is
// left to consumers of the results.
//
// Users of the sitecheck library should not need to interact with this
// package directly. Configuration is done through the main sitecheck
// package.
package probe
