// Package loader decodes settings files. The format is chosen by file extension.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LoaderFunc func([]byte) Loader

// Loader decodes a settings document onto a caller-provided value. Fields absent from the
// document keep whatever value the target already holds, so callers decode onto defaults.
type Loader interface {
	Decode(into any) error
	Format() string
}

// NewLoaderFromBytes creates a new Loader with the provided bytes
func NewLoaderFromBytes(data []byte, lodFunc LoaderFunc) (Loader, error) {
	if len(data) == 0 {
		return nil, ErrNoSourceProvided
	}
	return lodFunc(data), nil
}

// NewLoaderFromReader creates a new Loader from an io.Reader
func NewLoaderFromReader(reader io.Reader, lodFunc LoaderFunc) (Loader, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data from reader: %w", err)
	}
	return NewLoaderFromBytes(data, lodFunc)
}

// NewLoaderFromFilePath creates a new Loader from a file path
func NewLoaderFromFilePath(filePath string) (Loader, error) {
	lodFunc, err := ForExtension(filepath.Ext(filePath))
	if err != nil {
		return nil, FormatFileError(err, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, FormatFileError(ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}
	return NewLoaderFromBytes(data, lodFunc)
}

// ForExtension returns the LoaderFunc for a file extension such as ".toml".
func ForExtension(ext string) (LoaderFunc, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		return func(b []byte) Loader { return NewTomlLoader(b) }, nil
	case ".yaml", ".yml":
		return func(b []byte) Loader { return NewYamlLoader(b) }, nil
	case ".json":
		return func(b []byte) Loader { return NewJSONLoader(b) }, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}
}
