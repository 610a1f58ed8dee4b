package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const logFileName = "DevTimeLog.txt"

// SessionLog is an append-only text file with one session entry per line.
type SessionLog struct {
	path string
}

// NewSessionLog returns a log backed by the file at path.
func NewSessionLog(path string) *SessionLog {
	return &SessionLog{path: path}
}

// DefaultLogPath returns <config dir>/<appName>/DevTimeLog.txt.
func DefaultLogPath(appName string) (string, error) {
	return resolveAppFile(appName, logFileName)
}

// Path returns the backing file path.
func (log *SessionLog) Path() string {
	return log.path
}

// Append writes line to the end of the file, creating it and its parents if needed.
func (log *SessionLog) Append(line string) error {
	if err := os.MkdirAll(filepath.Dir(log.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(log.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	if _, err := file.WriteString(line + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// Load returns every line in file order. A missing file yields no lines.
// Lines are returned verbatim without validation.
func (log *SessionLog) Load() ([]string, error) {
	rawData, err := os.ReadFile(log.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	content := strings.ReplaceAll(string(rawData), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}
