// Package slog provides context-aware structured logging for orderlake
// services and CLIs. Fields attached to a context with With are emitted on
// every subsequent log line made with that context.
package slog

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Tag is a set of structured fields attached to an error log line.
type Tag map[string]interface{}

type contextKey struct{}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// SetUpDefaultCLILogger switches the process logger to a human-readable text
// handler at info level. Intended for interactive CLI use.
func SetUpDefaultCLILogger() {
	defaultLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// SetUpDebugLogger enables debug-level output. Used by --verbose flags.
func SetUpDebugLogger() {
	defaultLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// With returns a context whose log lines carry the given key/value pairs.
func With(ctx context.Context, keysAndValues ...interface{}) context.Context {
	return context.WithValue(ctx, contextKey{}, append(fieldsFromContext(ctx), keysAndValues...))
}

func fieldsFromContext(ctx context.Context) []interface{} {
	fields, _ := ctx.Value(contextKey{}).([]interface{})
	return fields
}

func logw(ctx context.Context, level slog.Level, msg string, keysAndValues ...interface{}) {
	l := defaultLogger.Load()
	if len(fieldsFromContext(ctx)) > 0 {
		l = l.With(fieldsFromContext(ctx)...)
	}
	l.Log(ctx, level, msg, keysAndValues...)
}

func Debugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	logw(ctx, slog.LevelDebug, msg, keysAndValues...)
}

func Infow(ctx context.Context, msg string, keysAndValues ...interface{}) {
	logw(ctx, slog.LevelInfo, msg, keysAndValues...)
}

func Warnw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	logw(ctx, slog.LevelWarn, msg, keysAndValues...)
}

// Errorw logs err with the optional tags. A nil err logs nothing.
func Errorw(ctx context.Context, err error, tags Tag) {
	if err == nil {
		return
	}
	kvs := make([]interface{}, 0, 2*len(tags))
	for k, v := range tags {
		kvs = append(kvs, k, v)
	}
	logw(ctx, slog.LevelError, err.Error(), kvs...)
}

// Fatalw logs at error level and exits the process.
func Fatalw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	logw(ctx, slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}
