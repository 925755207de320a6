package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a tint-backed logger writing to w. Color is only used when w
// is an *os.File (a terminal or redirected stream).
func New(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	_, isFile := w.(*os.File)
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   logLevel,
		NoColor: !isFile,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(formatRFC3339Millis(t))
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// FileOptions configures the rotating diagnostics file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Open returns a logger for load diagnostics. With a path it appends to a
// rotating file, otherwise it writes to stderr. The returned closer must be
// called before exit to flush the file.
func Open(opt FileOptions, verbose bool) (*slog.Logger, io.Closer) {
	if opt.Path == "" {
		return New(os.Stderr, verbose), nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   opt.Path,
		MaxSize:    opt.MaxSizeMB, // megabytes
		MaxBackups: opt.MaxBackups,
	}
	return New(lj, verbose), lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func formatRFC3339Millis(t time.Time) string {
	t = t.UTC()
	base := t.Format("2006-01-02T15:04:05")
	ms := t.Nanosecond() / 1_000_000
	return fmt.Sprintf("%s.%03dZ", base, ms)
}
