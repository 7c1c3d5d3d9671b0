package fetch

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Validation(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)
	f := New(WithHTTPClient(srv.Client()))

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "empty", url: "", want: "url required"},
		{name: "blank", url: "   ", want: "url required"},
		{name: "ftp", url: "ftp://example.com", want: "url must be http or https"},
		{name: "no scheme", url: "example.com", want: "url must be http or https"},
		{name: "file", url: "file:///etc/passwd", want: "url must be http or https"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Fetch(context.Background(), tt.url)
			assert.Equal(t, Result{"error": tt.want}, got)
			assert.Equal(t, tt.want, got.ErrorMessage())
		})
	}
	assert.Zero(t, hits.Load(), "validation failures must not touch the network")
}

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><head><title>News</title><style>body{color:red}</style>
<script>var x = "<b>hidden</b>";</script></head>
<body><h1>Top   story</h1><p>Caf&eacute; opens<br/>today.</p><!-- comment --></body></html>`)
	}))
	t.Cleanup(srv.Close)

	got := New(WithHTTPClient(srv.Client())).Fetch(context.Background(), "  "+srv.URL+"  ")
	assert.Equal(t, Result{
		"url":       srv.URL,
		"content":   "News Top story Café opens today.",
		"truncated": false,
		"length":    32,
		"_next":     NextSummarize,
	}, got)
	assert.Equal(t, "MoltWorld-OpenClaw/1.0 (fetch)", ua.Load())
}

func TestFetch_Truncates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<p>"+strings.Repeat("ü", 50)+"</p>")
	}))
	t.Cleanup(srv.Close)

	got := New(WithHTTPClient(srv.Client()), WithMaxChars(10)).Fetch(context.Background(), srv.URL)
	assert.Equal(t, strings.Repeat("ü", 10), got["content"])
	assert.Equal(t, true, got["truncated"])
	assert.Equal(t, 10, got["length"])
}

func TestFetch_HTTPStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	got := New(WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/missing")
	assert.Equal(t, Result{"error": "http 404", "url": srv.URL + "/missing"}, got)
}

func TestFetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	start := time.Now()
	got := New(WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	assert.Equal(t, "timeout", got["error"])
	assert.Equal(t, srv.URL, got["url"])
	assert.Equal(t, NextFailed, got["_next"])
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got := New().Fetch(context.Background(), url)
	require.NotEmpty(t, got.ErrorMessage())
	assert.NotEqual(t, "timeout", got["error"])
	assert.Equal(t, NextFailed, got["_next"])
}

func TestFetch_GzipBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			_, _ = io.WriteString(w, "<p>plain</p>")
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = io.WriteString(zw, "<p>compressed page</p>")
		_ = zw.Close()
	}))
	t.Cleanup(srv.Close)

	got := New().Fetch(context.Background(), srv.URL)
	assert.Equal(t, "compressed page", got["content"])
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "just  text\n\there", want: "just text here"},
		{name: "adjacent tags", in: "<b>foo</b><i>bar</i>", want: "foo bar"},
		{name: "nested script", in: "<div>a<script>alert(1)</script>b</div>", want: "a b"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
