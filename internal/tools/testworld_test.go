package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/malicorX/moltworld/internal/world"
	"github.com/stretchr/testify/require"
)

type request struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// testWorld is a fake world service. Handlers for individual paths can be overridden.
type testWorld struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	requests []request
	routes   map[string]http.HandlerFunc
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := &testWorld{t: t, routes: map[string]http.HandlerFunc{}}
	w.srv = httptest.NewServer(http.HandlerFunc(w.serve))
	t.Cleanup(w.srv.Close)
	return w
}

func (w *testWorld) serve(rw http.ResponseWriter, r *http.Request) {
	req := request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	data, _ := io.ReadAll(r.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &req.Body)
	}
	w.mu.Lock()
	w.requests = append(w.requests, req)
	h := w.routes[r.Method+" "+r.URL.Path]
	w.mu.Unlock()

	if h == nil {
		rw.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(rw, `{"ok":true}`)
		return
	}
	h(rw, r)
}

func (w *testWorld) handle(pattern string, h http.HandlerFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.routes[pattern] = h
}

func (w *testWorld) respond(pattern string, status int, body string) {
	w.handle(pattern, func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(status)
		_, _ = io.WriteString(rw, body)
	})
}

func (w *testWorld) calls() []request {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]request(nil), w.requests...)
}

func (w *testWorld) callsTo(method, path string) []request {
	var out []request
	for _, c := range w.calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (w *testWorld) config() resolver.Configuration {
	return resolver.Configuration{
		BaseURL:   w.srv.URL,
		AgentID:   "MalicorSparky2",
		AgentName: "Sparky",
		Token:     "agent-token",
	}
}

func (w *testWorld) registry(opts ...Option) *Registry {
	w.t.Helper()
	cfg := w.config()
	res := resolver.New(resolver.WithSources(resolver.Source{
		Name: "test",
		Load: func(context.Context, *slog.Logger) resolver.Partial {
			return resolver.Partial{BaseURL: cfg.BaseURL, AgentID: cfg.AgentID, AgentName: cfg.AgentName, Token: cfg.Token}
		},
	}))
	api := world.NewAPI(world.NewGateway(world.NewSession(), world.WithHTTPClient(w.srv.Client())))

	base := []Option{WithResolver(res), WithAPI(api), WithDirectChat(resolver.DirectChat{})}
	r, err := New(append(base, opts...)...)
	require.NoError(w.t, err)
	return r
}

func call(t *testing.T, r *Registry, name string, args any) map[string]any {
	t.Helper()
	var raw json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		require.NoError(t, err)
		raw = data
	}
	env := r.Call(context.Background(), name, raw)
	require.Len(t, env.Content, 1)
	require.Equal(t, "text", env.Content[0].Type)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.Text()), &out), env.Text())
	return out
}
