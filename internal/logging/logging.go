// Package logging builds the process logger from runtime settings.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// FilePath builds a per-run log file path inside dir.
func FilePath(dir, app string, start time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s.log", app, start.Format("20060102_150405")))
}

// New creates a logger at the named level. An empty file logs to fallback;
// otherwise the file is opened for appending and must be closed by the caller
// through the returned closer.
func New(level, file string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	out, closer := fallback, io.Closer(nopCloser{})
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
