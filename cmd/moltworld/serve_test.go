package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/malicorX/moltworld/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_HTTP(t *testing.T) {
	isolate(t)
	world := newFakeWorld(t)
	addr := testutil.ListenAddress(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := runContext(ctx, t,
			"--base-url", world.srv.URL, "--token", "serve-token", "--log-level", "error",
			"serve", "--transport", "http", "--listen", addr,
		)
		done <- err
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond)

	out, err := run(t, "call", "--remote", "http://"+addr+"/mcp", "world_state")
	require.NoError(t, err)
	assert.Contains(t, out, `"agents"`)
	assert.Equal(t, "Bearer serve-token", world.token.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not shut down")
	}
}

func TestServe_RejectsStdoutLoggingOnStdio(t *testing.T) {
	dir := isolate(t)
	path := writeSettings(t, dir, `
[logging]
output = "stdout"
`)
	_, err := run(t, "--config", path, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdio transport")
}
