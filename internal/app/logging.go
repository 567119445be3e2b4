package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/modalcore/internal/logging"
)

// NewSessionID returns a random identifier for one editor session. It
// tags every log line and the macro file written at exit.
func NewSessionID() string {
	return uuid.NewString()
}

// OpenLog opens the session log at path, appending, and returns a logger
// carrying the session field. An empty path discards all output. The
// caller closes the returned Closer after the last log call.
func OpenLog(path string, level logging.LogLevel, session string) (*logging.Logger, io.Closer, error) {
	if path == "" {
		return logging.NullLogger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, NewOperationError("open log", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, NewOperationError("open log", path, err)
	}
	l := logging.NewLogger(logging.LoggerConfig{
		Level:  level,
		Output: f,
		Prefix: "modalcore",
	})
	return l.WithField("session", session), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
