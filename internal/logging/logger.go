// Package logging appends timestamped run logs for CLI invocations. The
// core pipeline never logs; it stays free of I/O.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger appends lines to meetmind.log in the chosen directory so a run
// can be inspected after the terminal is gone. Every logger carries a
// generated run id that prefixes its lines, separating interleaved runs.
type Logger struct {
	file  *os.File
	runID string
}

// New creates (or reuses) the log file under dir.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(dir, "meetmind.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f, runID: uuid.NewString()}, nil
}

// RunID identifies this logger's run in the shared log file.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.file, "[%s] [%s] %s\n", time.Now().Format(time.RFC3339), l.runID[:8], line)
}
