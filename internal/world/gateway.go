// Package world talks to the MoltWorld HTTP API on behalf of one agent.
package world

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/malicorX/moltworld/internal/resolver"
)

// Response is a fully buffered upstream reply.
type Response struct {
	Status int
	Body   []byte
	URL    string
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Gateway sends authenticated requests and performs the single refresh-on-401/403 retry.
type Gateway struct {
	client  *http.Client
	session *Session
	logger  *slog.Logger
}

// NewGateway creates a Gateway bound to session.
func NewGateway(session *Session, opts ...Option) *Gateway {
	if session == nil {
		session = NewSession()
	}
	g := &Gateway{
		client:  &http.Client{},
		session: session,
		logger:  slog.Default().WithGroup("world"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Session returns the token cache shared by every call through this gateway.
func (g *Gateway) Session() *Session {
	return g.session
}

// Send issues method url with an optional JSON body.
//
// A token carried by cfg is adopted when the cache is empty, and the cached token (if any) is
// attached. On 401 or 403 exactly one token acquisition is attempted; when it yields a token the
// cache is replaced and the request is retried once, and the retry's response is returned.
// Otherwise the original response is returned.
func (g *Gateway) Send(
	ctx context.Context,
	cfg resolver.Configuration,
	method, url string,
	body any,
) (*Response, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	if g.session.Adopt(cfg.Token) {
		g.logger.Debug("Adopted configured token", describeToken(cfg.Token)...)
	}

	resp, err := g.do(ctx, method, url, payload, g.session.Token())
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized && resp.Status != http.StatusForbidden {
		return resp, nil
	}

	g.logger.Warn("Request rejected, requesting a new token", "method", method, "url", url, "status", resp.Status)
	token := g.Acquire(ctx, cfg)
	if token == "" {
		return resp, nil
	}
	g.session.Replace(token)
	return g.do(ctx, method, url, payload, token)
}

func (g *Gateway) do(ctx context.Context, method, url string, payload []byte, token string) (*Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, url, err)
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrRequestFailed, url, err)
	}

	g.logger.Debug("Request complete",
		"method", method,
		"url", url,
		"status", res.StatusCode,
		"has_token", token != "",
		"duration", time.Since(start),
	)
	return &Response{Status: res.StatusCode, Body: data, URL: url}, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
		return data, nil
	}
}
