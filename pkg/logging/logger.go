// Package logging provides the structured logger used across cukestatus.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface for structured logging.
// Compatible with *slog.Logger and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// zapLogger adapts a zap SugaredLogger to Logger, treating args as
// alternating key/value pairs.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap builds a development-style zap logger writing to stderr at the
// given level ("debug", "info", "warn", "error"). The returned function
// flushes buffered entries.
func NewZap(level string) (Logger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("could not build logger: %w", err)
	}

	return FromZap(logger), func() { _ = logger.Sync() }, nil
}

// FromZap wraps an existing zap logger.
func FromZap(logger *zap.Logger) Logger {
	return &zapLogger{sugar: logger.Sugar()}
}

// ParseLevel maps a level name onto a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func (l *zapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *zapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *zapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *zapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

// With returns a logger that adds the key/value pairs to every entry.
// Loggers not created by this package are returned unchanged.
func With(logger Logger, args ...any) Logger {
	if z, ok := logger.(*zapLogger); ok {
		return &zapLogger{sugar: z.sugar.With(args...)}
	}
	return logger
}

// noopLogger discards all log messages.
type noopLogger struct{}

// Noop returns a logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
