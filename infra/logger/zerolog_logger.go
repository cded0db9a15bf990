package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the process-wide log output.
type Options struct {
	// Level is a zerolog level name such as "debug" or "info".
	Level string
	// Format is "json" or "console". APP_ENV=dev forces console.
	Format string
	// File, when set, receives a copy of every entry with size based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	output io.Writer = os.Stdout
	level            = zerolog.InfoLevel
)

// Configure installs the writer and level used by subsequently created
// loggers. The returned closer releases the rotating file, if any.
func Configure(opts Options) (io.Closer, error) {
	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		lvl = parsed
	}

	var out io.Writer = os.Stdout
	if opts.Format == "console" || strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rot := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		out = zerolog.MultiLevelWriter(out, rot)
		closer = rot
	}

	mu.Lock()
	output = out
	level = lvl
	mu.Unlock()
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to the configured output.
// All logs include the provided component field.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	out, lvl := output, level
	mu.RUnlock()
	z := zerolog.New(out).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

// NewWithWriter builds a logger on an explicit writer, bypassing Configure.
func NewWithWriter(w io.Writer, component string) Logger {
	z := zerolog.New(w).Level(zerolog.DebugLevel).With().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

func (l *ZerologLogger) With(fields map[string]any) Logger {
	return &ZerologLogger{log: l.log.With().Fields(fields).Logger()}
}
