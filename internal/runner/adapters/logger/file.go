// Package logger provides the file-backed diagnostic logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger writes timestamped diagnostic lines to a state-dir log file,
// falling back to stderr when the file cannot be opened. User-facing output
// never goes through here.
type FileLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileLogger opens the log file under $XDG_STATE_HOME/flexrun (or
// ~/.local/state/flexrun).
func NewFileLogger() *FileLogger {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &FileLogger{}
		}
		dir = filepath.Join(home, ".local", "state")
	}
	dir = filepath.Join(dir, "flexrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileLogger{}
	}

	file, err := os.OpenFile(filepath.Join(dir, "flexrun.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &FileLogger{}
	}
	return &FileLogger{file: file}
}

func (l *FileLogger) Debug(message string) { l.write("DEBUG", message) }

func (l *FileLogger) Error(message string) { l.write("ERROR", message) }

func (l *FileLogger) write(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	if l.file != nil {
		_, _ = l.file.WriteString(line)
		return
	}
	fmt.Fprint(os.Stderr, line)
}

// Close releases the underlying log file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
