// Package config holds the moltworld settings file model.
//
// Settings are optional: every field has a default, and the world identity fields are only the
// first layer of the resolver chain in internal/resolver.
package config

import (
	"time"
)

const (
	VersionLatest  = "v1"
	VersionUnknown = "unknown"

	DefaultListen         = "127.0.0.1:8090"
	DefaultMCPPath        = "/mcp"
	DefaultFetchMaxChars  = 12000
	DefaultFetchTimeout   = 15 * time.Second
	DefaultFetchUserAgent = "MoltWorld-OpenClaw/1.0 (fetch)"
	DefaultDirectChatEnv  = "MOLTWORLD_CONTEXT"
	DefaultDiagnosticName = "moltworld_chat_say_result.json"
)

// Transport selects how the MCP server talks to its host.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// Settings is the root of a settings file.
type Settings struct {
	Version     string              `toml:"version"     yaml:"version"     json:"version"`
	World       WorldSettings       `toml:"world"       yaml:"world"       json:"world"`
	Server      ServerSettings      `toml:"server"      yaml:"server"      json:"server"`
	Fetch       FetchSettings       `toml:"fetch"       yaml:"fetch"       json:"fetch"`
	DirectChat  DirectChatSettings  `toml:"direct_chat" yaml:"direct_chat" json:"direct_chat"`
	Diagnostics DiagnosticsSettings `toml:"diagnostics" yaml:"diagnostics" json:"diagnostics"`
	Journal     JournalSettings     `toml:"journal"     yaml:"journal"     json:"journal"`
	Logging     LoggingSettings     `toml:"logging"     yaml:"logging"     json:"logging"`
}

// WorldSettings is the explicit layer of the agent configuration plus the discovery paths used
// by the lower layers. Empty discovery lists mean "use the well-known defaults".
type WorldSettings struct {
	BaseURL    string `toml:"base_url"    yaml:"base_url"    json:"base_url"    env_interpolation:"yes"`
	AgentID    string `toml:"agent_id"    yaml:"agent_id"    json:"agent_id"    env_interpolation:"yes"`
	AgentName  string `toml:"agent_name"  yaml:"agent_name"  json:"agent_name"  env_interpolation:"yes"`
	Token      string `toml:"token"       yaml:"token"       json:"token"       env_interpolation:"yes"`
	AdminToken string `toml:"admin_token" yaml:"admin_token" json:"admin_token" env_interpolation:"yes"`

	TokenFiles          []string `toml:"token_files"           yaml:"token_files"           json:"token_files"           env_interpolation:"yes"`
	EnvFiles            []string `toml:"env_files"             yaml:"env_files"             json:"env_files"             env_interpolation:"yes"`
	OpenClawConfigFiles []string `toml:"openclaw_config_files" yaml:"openclaw_config_files" json:"openclaw_config_files" env_interpolation:"yes"`
}

// ServerSettings controls the MCP transport.
type ServerSettings struct {
	Transport    Transport `toml:"transport"     yaml:"transport"     json:"transport"`
	Listen       string    `toml:"listen"        yaml:"listen"        json:"listen"        env_interpolation:"yes"`
	Path         string    `toml:"path"          yaml:"path"          json:"path"`
	ReadTimeout  Duration  `toml:"read_timeout"  yaml:"read_timeout"  json:"read_timeout"`
	WriteTimeout Duration  `toml:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  Duration  `toml:"idle_timeout"  yaml:"idle_timeout"  json:"idle_timeout"`
	DrainTimeout Duration  `toml:"drain_timeout" yaml:"drain_timeout" json:"drain_timeout"`
}

// FetchSettings tunes the fetch_url tool.
type FetchSettings struct {
	MaxChars  int      `toml:"max_chars"  yaml:"max_chars"  json:"max_chars"`
	Timeout   Duration `toml:"timeout"    yaml:"timeout"    json:"timeout"`
	UserAgent string   `toml:"user_agent" yaml:"user_agent" json:"user_agent" env_interpolation:"yes"`
}

// DirectChatSettings locates the direct-chat toggle read by world_state.
type DirectChatSettings struct {
	EnvVar string   `toml:"env_var" yaml:"env_var" json:"env_var"`
	Files  []string `toml:"files"   yaml:"files"   json:"files"   env_interpolation:"yes"`
}

// DiagnosticsSettings controls the chat_say side-channel record.
type DiagnosticsSettings struct {
	Enabled  bool     `toml:"enabled"   yaml:"enabled"   json:"enabled"`
	Dirs     []string `toml:"dirs"      yaml:"dirs"      json:"dirs"      env_interpolation:"yes"`
	FileName string   `toml:"file_name" yaml:"file_name" json:"file_name"`
}

// JournalSettings enables the SQLite invocation journal when Path is set.
type JournalSettings struct {
	Path string `toml:"path" yaml:"path" json:"path" env_interpolation:"yes"`
}

// LoggingSettings selects the log handler.
type LoggingSettings struct {
	Format LogFormat `toml:"format" yaml:"format" json:"format"`
	Level  LogLevel  `toml:"level"  yaml:"level"  json:"level"`
	Output string    `toml:"output" yaml:"output" json:"output" env_interpolation:"yes"`
}

// Default returns settings with every default applied. Loaders decode on top of this value.
func Default() *Settings {
	return &Settings{
		Version: VersionLatest,
		Server: ServerSettings{
			Transport:    TransportStdio,
			Listen:       DefaultListen,
			Path:         DefaultMCPPath,
			DrainTimeout: FromDuration(5 * time.Second),
		},
		Fetch: FetchSettings{
			MaxChars:  DefaultFetchMaxChars,
			Timeout:   FromDuration(DefaultFetchTimeout),
			UserAgent: DefaultFetchUserAgent,
		},
		DirectChat: DirectChatSettings{
			EnvVar: DefaultDirectChatEnv,
		},
		Diagnostics: DiagnosticsSettings{
			Enabled:  true,
			FileName: DefaultDiagnosticName,
		},
		Logging: LoggingSettings{
			Format: LogFormatText,
			Level:  LogLevelInfo,
			Output: "stderr",
		},
	}
}
