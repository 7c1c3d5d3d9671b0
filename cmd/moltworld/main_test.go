package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/malicorX/moltworld/cmd/moltworld/server"
	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/server/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// isolate points HOME at a temp dir and clears the environment sources.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"WORLD_AGENT_TOKEN", "MOLTWORLD_TOKEN", "MOLTWORLD_BASE_URL", "MOLTWORLD_AGENT_ID",
		"MOLTWORLD_AGENT_NAME", "MOLTWORLD_ADMIN_TOKEN", "MOLTWORLD_CONFIG", "MOLTWORLD_CONTEXT",
	} {
		t.Setenv(k, "")
	}
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
	return home
}

// run executes the CLI and returns its stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(context.Background(), t, args...)
}

func runContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := app.Run(ctx, append([]string{"moltworld"}, args...))
	return out.String(), err
}

type fakeWorld struct {
	srv   *httptest.Server
	hits  atomic.Int32
	token atomic.Value
}

func newFakeWorld(t *testing.T) *fakeWorld {
	t.Helper()
	w := &fakeWorld{}
	w.srv = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		w.hits.Add(1)
		w.token.Store(r.Header.Get("Authorization"))
		rw.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(rw, `{"agents":[{"agent_id":"A1","x":1,"y":2}],"landmarks":[]}`)
	}))
	t.Cleanup(w.srv.Close)
	return w
}

func writeSettings(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "moltworld.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "moltworld version dev\n", out)
}

func TestValidate(t *testing.T) {
	dir := isolate(t)

	t.Run("valid file", func(t *testing.T) {
		path := writeSettings(t, dir, `
version = "v1"
[world]
base_url = "https://world.example/"
token = "secret-token-1234"
`)
		out, err := run(t, "validate", path)
		require.NoError(t, err)
		assert.Contains(t, out, "is valid")
		assert.Contains(t, out, "https://world.example")
		assert.Contains(t, out, "****1234")
		assert.NotContains(t, out, "secret-token")
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeSettings(t, dir, `
[server]
transport = "pigeon"
`)
		_, err := run(t, "validate", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := run(t, "validate")
		require.Error(t, err)
	})
}

func TestCall_Local(t *testing.T) {
	isolate(t)
	world := newFakeWorld(t)

	out, err := run(t,
		"--base-url", world.srv.URL, "--token", "cli-token", "--log-level", "error",
		"call", "world_state",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"agents"`)
	assert.Contains(t, out, `"_next"`)
	assert.EqualValues(t, 1, world.hits.Load())
	assert.Equal(t, "Bearer cli-token", world.token.Load())
}

func TestCall_Errors(t *testing.T) {
	isolate(t)

	t.Run("missing tool name", func(t *testing.T) {
		_, err := run(t, "call")
		require.Error(t, err)
	})

	t.Run("unknown tool is reported in the envelope", func(t *testing.T) {
		out, err := run(t, "--log-level", "error", "call", "teleport")
		require.NoError(t, err)
		assert.Contains(t, out, "unknown tool: teleport")
	})

	t.Run("remote args must be an object", func(t *testing.T) {
		_, err := run(t, "call", "--remote", "http://127.0.0.1:1/mcp", "--args", "[1]", "world_state")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSON object")
	})
}

func TestCall_Remote(t *testing.T) {
	isolate(t)
	world := newFakeWorld(t)

	settings := config.Default()
	settings.World.BaseURL = world.srv.URL
	settings.World.Token = "remote-token"
	registry, _, err := server.NewRegistry(settings, nil)
	require.NoError(t, err)

	app, err := mcp.New(&mcp.Config{
		ID:             "moltworld",
		Path:           "/mcp",
		CompiledServer: mcp.Compile(registry, &mcpsdk.Implementation{Name: "moltworld", Version: "test"}),
	})
	require.NoError(t, err)
	mcpServer := httptest.NewServer(app)
	t.Cleanup(mcpServer.Close)

	out, err := run(t, "call", "--remote", mcpServer.URL, "world_state")
	require.NoError(t, err)
	assert.Contains(t, out, `"agents"`)

	out, err = run(t, "tools", "--remote", mcpServer.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "board_post")
}

func TestTools_Local(t *testing.T) {
	isolate(t)

	out, err := run(t, "--log-level", "error", "tools")
	require.NoError(t, err)
	for _, name := range []string{
		"world_state", "go_to", "world_action", "chat_say",
		"chat_shout", "fetch_url", "chat_inbox", "board_post",
	} {
		assert.Contains(t, out, name)
	}
}

func TestResolve(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".moltworld.env"),
		[]byte("WORLD_AGENT_TOKEN=env-file-token-9876\n"), 0o600))

	out, err := run(t, "--agent-id", "Sparky", "--log-level", "error", "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "Agent ID: Sparky")
	assert.Contains(t, out, "****9876")
	assert.NotContains(t, out, "env-file-token")
	assert.Contains(t, out, "Resolved field")
	assert.Contains(t, out, "env_files")
	assert.Contains(t, out, "Skipping unreadable file", "skipped sources are replayed")
}

func TestJournal(t *testing.T) {
	dir := isolate(t)
	world := newFakeWorld(t)
	path := writeSettings(t, dir, `
[world]
base_url = "`+world.srv.URL+`"
token = "tok"
[journal]
path = "`+filepath.Join(dir, "journal.db")+`"
[logging]
level = "error"
`)

	t.Run("disabled without a path", func(t *testing.T) {
		_, err := run(t, "--log-level", "error", "journal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "journal is disabled")
	})

	t.Run("lists recorded calls", func(t *testing.T) {
		_, err := run(t, "--config", path, "call", "world_state")
		require.NoError(t, err)
		_, err = run(t, "--config", path, "call", "--args", `{"target":""}`, "go_to")
		require.NoError(t, err)

		out, err := run(t, "--config", path, "journal", "--limit", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "Invocations (2)")
		assert.Contains(t, out, "world_state")
		assert.Contains(t, out, "go_to")
		assert.Contains(t, out, "target required")
		assert.Contains(t, out, "Summary: 1 ok, 1 failed")
	})
}
