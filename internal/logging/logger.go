package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Common field keys so call sites log the same attribute names.
const (
	KeyOperation = "operation"
	KeyUID       = "uid"
	KeyTodoID    = "todo_id"
	KeyDate      = "date"
	KeyBackend   = "backend"
	KeyCount     = "count"
	KeyDuration  = "duration"
)

// New builds the JSON logger. An empty level keeps info.
func New(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetLevel(logrus.InfoLevel)
	if strings.TrimSpace(level) != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		}
	}
	return logger
}

// OpenFile opens (appending) the log file at path and returns a logger
// writing to it. The TUI owns stdout, so logs never go there while it runs.
func OpenFile(path, level string) (*logrus.Logger, io.Closer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return New(io.Discard, level), io.NopCloser(nil), nil
	}
	if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	return New(io.Discard, "")
}

func Operation(logger logrus.FieldLogger, op string) *logrus.Entry {
	return logger.WithField(KeyOperation, op)
}

// UIDPrefix shortens a uid for logs; full uids and tokens are never logged.
func UIDPrefix(uid string) string {
	if len(uid) <= 6 {
		return uid
	}
	return uid[:6] + "..."
}
