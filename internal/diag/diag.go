// Package diag writes best-effort diagnostic records next to the host runtime's files.
package diag

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/malicorX/moltworld/internal/resolver"
)

// Writer writes a record to the first directory that accepts it.
type Writer struct {
	dirs   []string
	logger *slog.Logger
}

// New creates a Writer. With no dirs, it uses $HOME/.openclaw and the working directory.
func New(dirs []string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default().WithGroup("diag")
	}
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	return &Writer{dirs: dirs, logger: logger}
}

// DefaultDirs returns the well-known diagnostic directories.
func DefaultDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".openclaw"))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return dirs
}

// Write stores record as indented JSON under name. It returns the path written, or "" when
// every directory failed. Failures are only logged.
func (w *Writer) Write(name string, record any) string {
	if w == nil {
		return ""
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		w.logger.Debug("Diagnostic record not encodable", "name", name, "error", err)
		return ""
	}

	for _, dir := range w.dirs {
		if dir == "" {
			continue
		}
		dir = resolver.ExpandHome(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.logger.Debug("Diagnostic dir unusable", "dir", dir, "error", err)
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			w.logger.Debug("Diagnostic write failed", "path", path, "error", err)
			continue
		}
		return path
	}
	return ""
}
