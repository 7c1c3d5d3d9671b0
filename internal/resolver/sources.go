package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/malicorX/moltworld/internal/config"
)

const (
	SourceExplicit       = "explicit"
	SourceTokenFiles     = "token_files"
	SourceEnvironment    = "environment"
	SourceEnvFiles       = "env_files"
	SourceOpenClawConfig = "openclaw_config"

	EnvAgentToken      = "WORLD_AGENT_TOKEN"
	EnvAgentTokenAlias = "MOLTWORLD_TOKEN"
	EnvBaseURL         = "MOLTWORLD_BASE_URL"
	EnvAgentID         = "MOLTWORLD_AGENT_ID"
	EnvAgentName       = "MOLTWORLD_AGENT_NAME"
	EnvAdminToken      = "MOLTWORLD_ADMIN_TOKEN"

	pluginEntry = "openclaw-moltworld"
)

var envFileToken = regexp.MustCompile(`WORLD_AGENT_TOKEN\s*=\s*["']?([^"'\s#]+)`)

// DefaultSources returns the built-in chain for the given world settings. Empty path lists in
// the settings fall back to the well-known locations under the user's home directory.
func DefaultSources(world config.WorldSettings) []Source {
	home := homeDir()
	return []Source{
		Explicit(world),
		TokenFiles(orDefaults(world.TokenFiles, home, ".openclaw", "extensions", pluginEntry, ".token")),
		Environment(),
		EnvFiles(orDefaults(world.EnvFiles, home, ".moltworld.env")),
		OpenClawConfig(orDefaults(world.OpenClawConfigFiles, home, ".openclaw", "openclaw.json")),
	}
}

// Explicit uses the values from the settings file and command line.
func Explicit(world config.WorldSettings) Source {
	return Source{
		Name: SourceExplicit,
		Load: func(context.Context, *slog.Logger) Partial {
			return Partial{
				BaseURL:    world.BaseURL,
				AgentID:    world.AgentID,
				AgentName:  world.AgentName,
				Token:      world.Token,
				AdminToken: world.AdminToken,
			}
		},
	}
}

// TokenFiles reads the token from the first non-empty file.
func TokenFiles(paths []string) Source {
	return Source{
		Name: SourceTokenFiles,
		Load: func(ctx context.Context, logger *slog.Logger) Partial {
			for _, path := range paths {
				data, ok := readFile(ctx, logger, path)
				if !ok {
					continue
				}
				if tok := strings.TrimSpace(string(data)); tok != "" {
					return Partial{Token: tok}
				}
			}
			return Partial{}
		},
	}
}

// Environment reads the process environment. WORLD_AGENT_TOKEN wins over MOLTWORLD_TOKEN.
func Environment() Source {
	return Source{
		Name: SourceEnvironment,
		Load: func(context.Context, *slog.Logger) Partial {
			token := strings.TrimSpace(os.Getenv(EnvAgentToken))
			if token == "" {
				token = os.Getenv(EnvAgentTokenAlias)
			}
			return Partial{
				BaseURL:    os.Getenv(EnvBaseURL),
				AgentID:    os.Getenv(EnvAgentID),
				AgentName:  os.Getenv(EnvAgentName),
				Token:      token,
				AdminToken: os.Getenv(EnvAdminToken),
			}
		},
	}
}

// EnvFiles scans shell-style env files for a WORLD_AGENT_TOKEN assignment.
func EnvFiles(paths []string) Source {
	return Source{
		Name: SourceEnvFiles,
		Load: func(ctx context.Context, logger *slog.Logger) Partial {
			for _, path := range paths {
				data, ok := readFile(ctx, logger, path)
				if !ok {
					continue
				}
				if m := envFileToken.FindSubmatch(data); m != nil {
					return Partial{Token: string(m[1])}
				}
			}
			return Partial{}
		},
	}
}

type openClawFile struct {
	Plugins struct {
		Entries map[string]struct {
			Config openClawPluginConfig `json:"config"`
		} `json:"entries"`
	} `json:"plugins"`
}

type openClawPluginConfig struct {
	BaseURL    string `json:"baseUrl"`
	AgentID    string `json:"agentId"`
	AgentName  string `json:"agentName"`
	Token      string `json:"token"`
	AdminToken string `json:"adminToken"`
}

// OpenClawConfig reads the plugin entry of the host runtime's JSON config. The first file
// that parses and carries the entry wins.
func OpenClawConfig(paths []string) Source {
	return Source{
		Name: SourceOpenClawConfig,
		Load: func(ctx context.Context, logger *slog.Logger) Partial {
			for _, path := range paths {
				data, ok := readFile(ctx, logger, path)
				if !ok {
					continue
				}
				var doc openClawFile
				if err := json.Unmarshal(data, &doc); err != nil {
					logger.DebugContext(ctx, "Skipping malformed config", "path", path, "error", err)
					continue
				}
				entry, ok := doc.Plugins.Entries[pluginEntry]
				if !ok {
					continue
				}
				c := entry.Config
				return Partial{
					BaseURL:    c.BaseURL,
					AgentID:    c.AgentID,
					AgentName:  c.AgentName,
					Token:      c.Token,
					AdminToken: c.AdminToken,
				}
			}
			return Partial{}
		},
	}
}

func readFile(ctx context.Context, logger *slog.Logger, path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		logger.DebugContext(ctx, "Skipping unreadable file", "path", path, "error", err)
		return nil, false
	}
	return data, true
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := homeDir()
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func orDefaults(configured []string, home string, elem ...string) []string {
	if len(configured) > 0 {
		return configured
	}
	if home == "" {
		return nil
	}
	return []string{filepath.Join(append([]string{home}, elem...)...)}
}
