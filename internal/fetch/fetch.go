// Package fetch implements the fetch_url page reader: download a public page and reduce it to
// plain text within a character budget.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/gzhttp"
	"github.com/malicorX/moltworld/internal/config"
)

const (
	// NextSummarize is the hint attached to a successful fetch.
	NextSummarize = "You MUST call chat_say now with a 1-2 sentence summary of the content above for the user. Do not end the turn without chat_say."
	// NextFailed is the hint attached to a failed fetch.
	NextFailed = "Fetch failed. Call chat_say to tell the user (e.g. 'I couldn't load that page right now.')."

	maxBodyBytes = 8 << 20
)

// Result is the fetch_url payload.
type Result map[string]any

// ErrorMessage returns the payload's error string, or "" on success.
func (r Result) ErrorMessage() string {
	s, _ := r["error"].(string)
	return s
}

// Fetcher downloads pages with a fixed deadline.
type Fetcher struct {
	client    *http.Client
	maxChars  int
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

// New creates a Fetcher with the default budget, deadline, and user agent.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)},
		maxChars:  config.DefaultFetchMaxChars,
		timeout:   config.DefaultFetchTimeout,
		userAgent: config.DefaultFetchUserAgent,
		logger:    slog.Default().WithGroup("fetch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL and extracts its text. It never returns a Go error: every failure is
// reported in the payload.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return Result{"error": "url required"}
	}
	if !isHTTP(target) {
		return Result{"error": "url must be http or https"}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	status, body, err := f.get(ctx, target)
	if err != nil {
		msg := err.Error()
		if isTimeout(err) {
			msg = "timeout"
		}
		f.logger.Warn("Fetch failed", "url", target, "error", err, "duration", time.Since(start))
		return Result{"error": msg, "url": target, "_next": NextFailed}
	}
	if status < 200 || status > 299 {
		f.logger.Debug("Fetch returned non-2xx", "url", target, "status", status)
		return Result{"error": fmt.Sprintf("http %d", status), "url": target}
	}

	text, err := ExtractText(body)
	if err != nil {
		return Result{"error": err.Error(), "url": target, "_next": NextFailed}
	}
	content, truncated := truncate(text, f.maxChars)

	f.logger.Debug("Fetched page",
		"url", target,
		"bytes", len(body),
		"chars", utf8.RuneCountInString(content),
		"truncated", truncated,
		"duration", time.Since(start),
	)
	return Result{
		"url":       target,
		"content":   content,
		"truncated": truncated,
		"length":    utf8.RuneCountInString(content),
		"_next":     NextSummarize,
	}
}

func (f *Fetcher) get(ctx context.Context, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	res, err := f.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res.StatusCode, nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, body, nil
}

func isHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, maxChars int) (string, bool) {
	if utf8.RuneCountInString(s) <= maxChars {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:maxChars]), true
}
