package logger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex
	// log is the global zap logger instance, a no-op until Initialize is called
	log = zap.NewNop()
	// sentryClient is the global sentry client
	sentryClient *sentry.Client
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// Level overrides the level implied by Debug ("debug", "info", "warn", "error")
	Level           string
	SentryDSN       string
	SentryClient    *sentry.Client
	BreadcrumbLevel zapcore.Level
	Tags            map[string]string
}

// Initialize builds the global logger and, when a DSN or client is given, forwards
// error level entries to sentry
func Initialize(cfg Config) error {
	var zapConfig zap.Config
	if cfg.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := parseLevel(cfg)
	if err != nil {
		return err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return err
	}

	var client *sentry.Client
	if cfg.SentryClient != nil {
		client = cfg.SentryClient
	} else if cfg.SentryDSN != "" {
		client, err = sentry.NewClient(sentry.ClientOptions{
			Dsn:   cfg.SentryDSN,
			Debug: cfg.Debug,
		})
		if err != nil {
			return err
		}
	}

	if client != nil {
		breadcrumbLevel := cfg.BreadcrumbLevel
		if breadcrumbLevel == zapcore.InvalidLevel {
			breadcrumbLevel = zapcore.InfoLevel
		}

		core, err := zapsentry.NewCore(zapsentry.Configuration{
			Level:             zapcore.ErrorLevel,
			EnableBreadcrumbs: true,
			BreadcrumbLevel:   breadcrumbLevel,
			Tags:              cfg.Tags,
		}, zapsentry.NewSentryClientFromClient(client))
		if err != nil {
			return err
		}
		baseLogger = zapsentry.AttachCoreToLogger(core, baseLogger)
	}

	mu.Lock()
	log = baseLogger
	sentryClient = client
	mu.Unlock()

	return nil
}

func parseLevel(cfg Config) (zapcore.Level, error) {
	if cfg.Level == "" {
		if cfg.Debug {
			return zapcore.DebugLevel, nil
		}
		return zapcore.InfoLevel, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return zapcore.InvalidLevel, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

// Flush syncs the logger and flushes buffered sentry events
func Flush(timeout time.Duration) {
	mu.RLock()
	l, client := log, sentryClient
	mu.RUnlock()

	_ = l.Sync()
	if client != nil {
		client.Flush(timeout)
	}
}

// Default returns the global logger (without context scope)
func Default() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Named returns a child of the global logger scoped to a component
func Named(component string) *zap.Logger {
	return Default().Named(component)
}

// FromContext returns a logger bound to the sentry scope carried by ctx
func FromContext(ctx context.Context) *zap.Logger {
	l := Default()
	if ctx == nil {
		return l
	}
	return l.With(zapsentry.Context(ctx))
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Default().Info(msg, fields...)
}

// InfoCtx logs an info message with context
func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

// Error logs an error
func Error(err error, fields ...zap.Field) {
	if err != nil {
		Default().Error(err.Error(), fields...)
	} else {
		Default().Error("error occurred", fields...)
	}
}

// ErrorCtx logs an error with context
func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	if err != nil {
		FromContext(ctx).Error(err.Error(), fields...)
	} else {
		FromContext(ctx).Error("error occurred", fields...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	Default().Fatal(msg, fields...)
}

// FatalCtx logs a fatal message with context and exits
func FatalCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Default().Warn(msg, fields...)
}

// WarnCtx logs a warning message with context
func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	Default().Debug(msg, fields...)
}

// DebugCtx logs a debug message with context
func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}
