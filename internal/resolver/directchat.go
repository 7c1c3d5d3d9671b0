package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/malicorX/moltworld/internal/config"
)

const contextFile = ".moltworld_context"

// DirectChat is the toggle that switches world_state hints to direct-chat mode.
type DirectChat struct {
	EnvVar string
	Files  []string
}

// NewDirectChat builds the toggle from settings, filling in the well-known file locations.
func NewDirectChat(s config.DirectChatSettings) DirectChat {
	d := DirectChat{EnvVar: s.EnvVar, Files: s.Files}
	if d.EnvVar == "" {
		d.EnvVar = config.DefaultDirectChatEnv
	}
	if len(d.Files) == 0 {
		d.Files = defaultContextFiles()
	}
	return d
}

// Off reports whether the world context is switched off. The environment variable wins;
// otherwise the first readable toggle file decides.
func (d DirectChat) Off() bool {
	if d.EnvVar != "" && isOff(os.Getenv(d.EnvVar)) {
		return true
	}
	for _, path := range d.Files {
		data, err := os.ReadFile(ExpandHome(path))
		if err != nil {
			continue
		}
		if isOff(string(data)) {
			return true
		}
	}
	return false
}

func isOff(v string) bool {
	v = strings.ReplaceAll(v, "\r", "")
	return strings.EqualFold(strings.TrimSpace(v), "off")
}

func defaultContextFiles() []string {
	var paths []string
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if home := homeDir(); home != "" {
		add(filepath.Join(home, contextFile))
	}
	for _, name := range []string{os.Getenv("LOGNAME"), os.Getenv("USER")} {
		if name != "" {
			add(filepath.Join("/home", name, contextFile))
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		add(filepath.Join(cwd, contextFile))
	}
	return paths
}
