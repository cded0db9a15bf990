package logger

import corelogger "github.com/kilianp07/premium/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}
func (n NopLogger) With(map[string]any) Logger  { return n }

// New returns a Logger for the given component using the options last passed
// to Configure. Without Configure, logs go to stdout at info level.
func New(component string) Logger {
	return NewZerologLogger(component)
}
