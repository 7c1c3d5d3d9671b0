// Package writers maps a log output setting to an io.Writer.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType represents the type of writer to create
type WriterType string

const (
	WriterTypeStdout  WriterType = "stdout"
	WriterTypeStderr  WriterType = "stderr"
	WriterTypeDiscard WriterType = "discard"
	WriterTypeFile    WriterType = "file"
)

// CreateWriter creates an io.Writer for an output setting.
// Supported formats:
//   - "stderr" or "" - writes to os.Stderr
//   - "stdout" - writes to os.Stdout (never with the stdio transport)
//   - "discard" - drops everything
//   - "file:///path/to/file" or "/path/to/file" - appends to a file, creating directories
func CreateWriter(output string) (io.Writer, error) {
	switch ParseWriterType(output) {
	case WriterTypeStderr:
		return os.Stderr, nil
	case WriterTypeStdout:
		return os.Stdout, nil
	case WriterTypeDiscard:
		return io.Discard, nil
	case WriterTypeFile:
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	default:
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
}

// ParseWriterType determines the writer type from an output string. It returns an
// empty WriterType for outputs that are neither a known stream nor a file path.
func ParseWriterType(output string) WriterType {
	switch output {
	case "", "stderr":
		return WriterTypeStderr
	case "stdout":
		return WriterTypeStdout
	case "discard":
		return WriterTypeDiscard
	}
	if strings.HasPrefix(output, "file://") || isFilePath(output) {
		return WriterTypeFile
	}
	return ""
}

func isFilePath(path string) bool {
	if strings.Contains(path, "://") {
		return false
	}
	return strings.ContainsAny(path, `/\`) || filepath.Ext(path) == ".log"
}

func createFileWriter(filePath string) (io.Writer, error) {
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return file, nil
}
