// Package urlfile reads target URL lists for sitecheck.
//
// The file format is plain text with one URL per line. Blank lines and
// lines starting with '#' are ignored, so lists can carry comments:
//
//	# production
//	https://example.com
//	https://api.example.com/health
//
// Every surviving line must be an absolute http or https URL; anything else
// fails the whole read, since a malformed target is a configuration mistake
// rather than a site being down.
package urlfile

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Read loads and parses the URL list file at path.
//
// Returns the valid, trimmed URLs in file order. The error distinguishes an
// unreadable file from an invalid line; both are fatal to a run.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer func() { _ = f.Close() }()

	urls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return urls, nil
}

// Parse reads a URL list from r, one URL per line.
//
// Lines are trimmed of surrounding whitespace; empty lines and lines whose
// first character is '#' are skipped. Each remaining line is validated as
// an absolute http/https URL. Returns the URLs in input order.
func Parse(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := validateTarget(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	return urls, nil
}

// validateTarget checks that s is an absolute http or https URL.
func validateTarget(s string) error {
	if err := validation.Validate(s, validation.Required, is.URL); err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", s)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", s)
	}
	return nil
}
