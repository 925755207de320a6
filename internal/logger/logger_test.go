package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesPlainTextToBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Warn("row skipped", "line", 4, "field", "")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "row skipped")
	assert.Contains(t, out, "line=4")
	assert.NotContains(t, out, "field=")
	assert.NotContains(t, out, "\x1b[", "no ANSI color outside files")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestOpenRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	log, closer := Open(FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1}, false)
	log.Info("csv import finished", "imported", 3)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "csv import finished")
	assert.Contains(t, string(b), "imported=3")
}

func TestOpenWithoutPathUsesStderr(t *testing.T) {
	log, closer := Open(FileOptions{}, false)
	require.NotNil(t, log)
	assert.NoError(t, closer.Close())
}

func TestFormatRFC3339Millis(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-03-01T11:30:45.123Z", formatRFC3339Millis(ts))
}
