package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// connection pooling limits to prevent resource exhaustion when probing
// large URL lists
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second // conservative: matches common ALB defaults
)

// Response holds the result of a single HTTP probe made by [Client].
//
// A probe either yields a status code (any code counts as a completed
// exchange) or a transport-level error, never both.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any transport-level error that occurred during the
	// request. nil indicates an HTTP response was received (though the
	// status code may indicate an application-level error).
	Error error
}

// OK reports whether the probe completed an HTTP exchange.
func (r Response) OK() bool {
	return r.Error == nil
}

// Client is an HTTP client wrapper optimized for one-shot liveness probes.
//
// Client uses per-request timeouts via context rather than a global timeout,
// so callers can probe different targets with different deadlines through
// the same connection pool. Response bodies are discarded unread; only
// reachability and status code matter for a liveness probe.
//
// A single Client is safe for concurrent use by multiple workers.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a probing [Client].
//
// The client is configured with connection pooling limits to prevent
// resource exhaustion when probing many URLs. Timeouts are applied
// per-request via the timeout parameter in [Client.Fetch], not as a global
// client timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false, // explicitly enable connection reuse
			},
		},
	}
}

// Fetch performs one HTTP GET against url and returns a structured
// [Response].
//
// The request is bounded by the given timeout via context cancellation.
// Fetch always returns a Response; errors are captured in the Error field
// rather than returned separately, which simplifies handling in the retry
// loop.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	// liveness only: the body content is irrelevant, close it unread so the
	// connection returns to the pool
	_ = resp.Body.Close()

	return Response{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
		Error:      nil,
	}
}

// Close closes all idle connections in the client's connection pool.
//
// This should be called when the client is no longer needed to release
// resources immediately rather than waiting for the idle connection timeout.
// Safe to call multiple times. After Close, the client remains usable but
// new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
