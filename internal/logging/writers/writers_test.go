package writers

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWriter(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	tests := []struct {
		name       string
		output     string
		want       io.Writer
		wantFile   bool
		shouldFail bool
	}{
		{name: "empty string defaults to stderr", output: "", want: os.Stderr},
		{name: "stderr", output: "stderr", want: os.Stderr},
		{name: "stdout", output: "stdout", want: os.Stdout},
		{name: "discard", output: "discard", want: io.Discard},
		{name: "file path", output: filepath.Join(tmpDir, "a.log"), wantFile: true},
		{name: "file protocol", output: "file://" + filepath.Join(tmpDir, "b.log"), wantFile: true},
		{name: "unsupported scheme", output: "redis://localhost:6379", shouldFail: true},
		{name: "bare word", output: "syslog", shouldFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, err := CreateWriter(tt.output)
			if tt.shouldFail {
				require.Error(t, err)
				assert.Nil(t, writer)
				return
			}
			require.NoError(t, err)

			if tt.wantFile {
				f, ok := writer.(*os.File)
				require.True(t, ok)
				assert.NotEqual(t, os.Stdout, f)
				assert.NotEqual(t, os.Stderr, f)
				require.NoError(t, f.Close())
				return
			}
			assert.Equal(t, tt.want, writer)
		})
	}
}

func TestCreateFileWriter(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("nested directories are created", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested", "dir", "moltworld.log")
		writer, err := createFileWriter(path)
		require.NoError(t, err)

		_, err = writer.Write([]byte("line\n"))
		require.NoError(t, err)
		require.NoError(t, writer.(*os.File).Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "line\n", string(content))
	})

	t.Run("appends to existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing.log")
		require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

		writer, err := createFileWriter(path)
		require.NoError(t, err)
		_, err = writer.Write([]byte("second\n"))
		require.NoError(t, err)
		require.NoError(t, writer.(*os.File).Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(content))
	})
}

func TestParseWriterType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		output   string
		expected WriterType
	}{
		{"", WriterTypeStderr},
		{"stderr", WriterTypeStderr},
		{"stdout", WriterTypeStdout},
		{"discard", WriterTypeDiscard},
		{"/var/log/moltworld.log", WriterTypeFile},
		{"file:///var/log/moltworld.log", WriterTypeFile},
		{"./logs/app.log", WriterTypeFile},
		{"moltworld.log", WriterTypeFile},
		{"https://example.com/log", ""},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseWriterType(tt.output))
		})
	}
}
