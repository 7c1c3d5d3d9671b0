package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, VersionLatest, s.Version)
	assert.Equal(t, TransportStdio, s.Server.Transport)
	assert.Equal(t, DefaultFetchMaxChars, s.Fetch.MaxChars)
	assert.Equal(t, DefaultFetchTimeout, s.Fetch.Timeout.AsDuration())
	assert.Equal(t, DefaultFetchUserAgent, s.Fetch.UserAgent)
	assert.Equal(t, DefaultDirectChatEnv, s.DirectChat.EnvVar)
	assert.True(t, s.Diagnostics.Enabled)
	assert.Empty(t, s.Journal.Path)
}

func TestNewSettings(t *testing.T) {
	t.Setenv("MOLTWORLD_TEST_TOKEN", "tok-from-env")

	t.Run("empty path", func(t *testing.T) {
		s, err := NewSettings("")
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeSettings(t, "moltworld.toml", `
version = "v1"

[world]
base_url = "https://world.example/"
agent_id = "Sparky"
token = "${MOLTWORLD_TEST_TOKEN}"

[server]
transport = "http"
listen = "127.0.0.1:9999"
drain_timeout = "2s"

[fetch]
timeout = "3s"

[journal]
path = "/tmp/moltworld.db"
`)
		s, err := NewSettings(path)
		require.NoError(t, err)

		assert.Equal(t, "https://world.example", s.World.BaseURL)
		assert.Equal(t, "Sparky", s.World.AgentID)
		assert.Equal(t, "tok-from-env", s.World.Token)
		assert.Equal(t, TransportHTTP, s.Server.Transport)
		assert.Equal(t, "127.0.0.1:9999", s.Server.Listen)
		assert.Equal(t, DefaultMCPPath, s.Server.Path)
		assert.Equal(t, 2*time.Second, s.Server.DrainTimeout.AsDuration())
		assert.Equal(t, 3*time.Second, s.Fetch.Timeout.AsDuration())
		assert.Equal(t, DefaultFetchMaxChars, s.Fetch.MaxChars)
		assert.Equal(t, "/tmp/moltworld.db", s.Journal.Path)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeSettings(t, "moltworld.yaml", `
world:
  agent_id: Sparky
direct_chat:
  files: ["/tmp/ctx"]
diagnostics:
  enabled: false
logging:
  format: json
  level: debug
`)
		s, err := NewSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "Sparky", s.World.AgentID)
		assert.Equal(t, []string{"/tmp/ctx"}, s.DirectChat.Files)
		assert.False(t, s.Diagnostics.Enabled)
		assert.Equal(t, LogFormatJSON, s.Logging.Format)
		assert.Equal(t, LogLevelDebug, s.Logging.Level)
	})

	t.Run("json", func(t *testing.T) {
		path := writeSettings(t, "moltworld.json", `{"fetch":{"max_chars":500,"user_agent":"test-agent"}}`)
		s, err := NewSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 500, s.Fetch.MaxChars)
		assert.Equal(t, "test-agent", s.Fetch.UserAgent)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewSettings(filepath.Join(t.TempDir(), "absent.toml"))
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeSettings(t, "moltworld.toml", "[fetch]\ntimeout = \"soon\"\n")
		_, err := NewSettings(path)
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})
}

func TestNewSettingsFromBytes(t *testing.T) {
	s, err := NewSettingsFromBytes([]byte("world:\n  agent_name: Sparky Two\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sparky Two", s.World.AgentName)

	s, err = NewSettingsFromBytes(nil, "toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = NewSettingsFromBytes([]byte("x"), "ini")
	require.ErrorIs(t, err, ErrFailedToLoadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
		wantMsg string
	}{
		{
			name:    "unsupported version",
			mutate:  func(s *Settings) { s.Version = "v2" },
			wantErr: ErrUnsupportedConfigVer,
		},
		{
			name:    "non-http base url",
			mutate:  func(s *Settings) { s.World.BaseURL = "ftp://world.example" },
			wantErr: ErrInvalidValue,
			wantMsg: "world.base_url",
		},
		{
			name:    "base url without host",
			mutate:  func(s *Settings) { s.World.BaseURL = "https://" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown transport",
			mutate:  func(s *Settings) { s.Server.Transport = "carrier-pigeon" },
			wantErr: ErrInvalidValue,
			wantMsg: "server.transport",
		},
		{
			name: "http without listen",
			mutate: func(s *Settings) {
				s.Server.Transport = TransportHTTP
				s.Server.Listen = ""
			},
			wantErr: ErrMissingRequiredField,
		},
		{
			name: "http path without slash",
			mutate: func(s *Settings) {
				s.Server.Transport = TransportHTTP
				s.Server.Path = "mcp"
			},
			wantErr: ErrInvalidValue,
			wantMsg: "server.path",
		},
		{
			name:    "zero fetch budget",
			mutate:  func(s *Settings) { s.Fetch.MaxChars = 0 },
			wantErr: ErrInvalidValue,
			wantMsg: "fetch.max_chars",
		},
		{
			name:    "zero fetch timeout",
			mutate:  func(s *Settings) { s.Fetch.Timeout = 0 },
			wantErr: ErrInvalidValue,
			wantMsg: "fetch.timeout",
		},
		{
			name:    "bad log level",
			mutate:  func(s *Settings) { s.Logging.Level = "loud" },
			wantErr: ErrInvalidValue,
			wantMsg: "logging.level",
		},
		{
			name:    "undefined env reference",
			mutate:  func(s *Settings) { s.World.Token = "${MOLTWORLD_SURELY_UNDEFINED_VAR}" },
			wantMsg: "interpolation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	t.Run("collects every problem", func(t *testing.T) {
		s := Default()
		s.Fetch.MaxChars = -1
		s.Logging.Format = "xml"
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch.max_chars")
		assert.Contains(t, err.Error(), "logging.format")
	})

	t.Run("empty version defaults", func(t *testing.T) {
		s := Default()
		s.Version = ""
		require.NoError(t, s.Validate())
		assert.Equal(t, VersionLatest, s.Version)
	})
}

func TestSettingsString(t *testing.T) {
	s := Default()
	s.World.BaseURL = "https://world.example"
	s.World.Token = "super-secret-token"
	s.Server.Transport = TransportHTTP

	str := s.String()
	assert.Contains(t, str, "transport=http")
	assert.Contains(t, str, "world=https://world.example")
	assert.NotContains(t, str, "super-secret-token")

	tree := s.ToTree().String()
	assert.Contains(t, tree, "World")
	assert.Contains(t, tree, "https://world.example")
	assert.Contains(t, tree, "****oken")
	assert.NotContains(t, tree, "super-secret-token")
	assert.Contains(t, tree, "Journal: disabled")
}

func TestDurationAndLogParsing(t *testing.T) {
	d, err := ParseDuration("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d.AsDuration())

	_, err = ParseDuration("later")
	require.ErrorIs(t, err, ErrInvalidValue)

	text, err := FromDuration(time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1s", string(text))

	lvl, err := LogLevelFromString("WARNING")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, lvl)
	_, err = LogLevelFromString("verbose")
	require.ErrorIs(t, err, ErrInvalidValue)

	f, err := LogFormatFromString("txt")
	require.NoError(t, err)
	assert.Equal(t, LogFormatText, f)
	_, err = LogFormatFromString("xml")
	require.ErrorIs(t, err, ErrInvalidValue)
}
