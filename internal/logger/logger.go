package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted in the log.level setting. Matching is case-insensitive;
// anything else falls back to debug.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	shared   *Logger
	initOnce sync.Once
)

// Get returns the process-wide logger writing to stdout. Only the level of
// the first call is honoured.
func Get(level string) *Logger {
	initOnce.Do(func() {
		shared = New(level, os.Stdout)
	})
	return shared
}

// New builds a standalone logger writing to w, for tests and tools that must
// not share the process logger.
func New(level string, w io.Writer) *Logger {
	core := newConsoleCore(toZapLevel(level), zapcore.AddSync(w))
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}
