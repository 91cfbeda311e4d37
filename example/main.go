// Command example demonstrates using sitecheck as a library.
//
// It starts a small mock site on localhost, then checks a mix of reachable
// and unreachable URLs and prints the outcomes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/kwren/sitecheck"
)

func main() {
	// mock site: /ok answers 200, /teapot answers 418
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	go func() {
		if err := http.ListenAndServe(":9999", mux); err != nil {
			slog.Error("mock site failed", "error", err)
			os.Exit(1)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	c, err := sitecheck.New(
		sitecheck.WithWorkers(4),
		sitecheck.WithTimeout(2*time.Second),
		sitecheck.WithRetries(1),
		sitecheck.WithAttemptListener(func(url string, attempt int) {
			fmt.Printf("Attempt %d for %s\n", attempt, url)
		}),
	)
	if err != nil {
		slog.Error("failed to create checker", "error", err)
		os.Exit(1)
	}

	results := c.Run(context.Background(), []string{
		"http://localhost:9999/ok",
		"http://localhost:9999/teapot",
		"http://localhost:1", // nothing listens here
	})

	fmt.Println()
	for _, r := range results {
		if r.OK() {
			fmt.Printf("[%s] %d (%s)\n", r.URL, r.StatusCode, r.Elapsed)
		} else {
			fmt.Printf("[%s] ERROR: %v (%s)\n", r.URL, r.Err, r.Elapsed)
		}
	}
}
