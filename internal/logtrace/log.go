package logtrace

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey is the type used for storing values in context
type ContextKey string

// CorrelationIDKey is the key for storing correlation ID in context
const CorrelationIDKey ContextKey = "correlation_id"

// Options configures the process logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Output receives log lines. Default: os.Stderr
	Output io.Writer
}

var (
	mu     sync.Mutex
	logger *zap.Logger
)

// Setup initializes the logger with a readable console encoder.
func Setup(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(out),
		zap.NewAtomicLevelAt(level),
	)

	mu.Lock()
	logger = zap.New(core)
	mu.Unlock()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}

// CtxWithCorrelationID stores a correlation ID inside the context
func CtxWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func extractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		// Fallback if Setup wasn't called
		logger = zap.NewNop()
	}
	return logger
}

func logWithLevel(level zapcore.Level, ctx context.Context, message string, fields Fields) {
	l := current()
	if !l.Core().Enabled(level) {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zapFields := make([]zap.Field, 0, len(fields)+1)
	if id := extractCorrelationID(ctx); id != "" {
		zapFields = append(zapFields, zap.String(FieldCorrelationID, id))
	}
	for _, k := range keys {
		zapFields = append(zapFields, zap.Any(k, fields[k]))
	}

	switch level {
	case zapcore.DebugLevel:
		l.Debug(message, zapFields...)
	case zapcore.InfoLevel:
		l.Info(message, zapFields...)
	case zapcore.WarnLevel:
		l.Warn(message, zapFields...)
	default:
		l.Error(message, zapFields...)
	}
}

// Error logs an error message with structured fields
func Error(ctx context.Context, message string, fields Fields) {
	logWithLevel(zapcore.ErrorLevel, ctx, message, fields)
}

// Warn logs a warning message with structured fields
func Warn(ctx context.Context, message string, fields Fields) {
	logWithLevel(zapcore.WarnLevel, ctx, message, fields)
}

// Info logs an informational message with structured fields
func Info(ctx context.Context, message string, fields Fields) {
	logWithLevel(zapcore.InfoLevel, ctx, message, fields)
}

// Debug logs a debug message with structured fields
func Debug(ctx context.Context, message string, fields Fields) {
	logWithLevel(zapcore.DebugLevel, ctx, message, fields)
}
