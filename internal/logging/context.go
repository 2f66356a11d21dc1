package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey int

const (
	keyLogger ctxKey = iota
	keyFile
)

// FromContext returns the logger carried by ctx. A context without one
// yields the process-wide default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(keyLogger).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, keyLogger, logger)
}

// WithFile scopes the context logger to one input. Every record logged
// through the returned context carries the path field, and FileFrom
// reports the path. Stdin is logged under "-".
func WithFile(ctx context.Context, path string) context.Context {
	if path == "" {
		path = "-"
	}
	logger := FromContext(ctx).With(FieldPath, path)
	ctx = WithLogger(ctx, logger)
	return context.WithValue(ctx, keyFile, path)
}

// FileFrom returns the input path set by WithFile, if any.
func FileFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	path, ok := ctx.Value(keyFile).(string)
	return path, ok
}
