// Package logctx carries a zerolog logger through context.Context so the
// runner and the targets it drives log with the fields their callers added
// (run_id, target, variant).
//
// Usage:
//
//	ctx := logctx.WithLogger(ctx, *logging.L())
//	ctx = logctx.WithTarget(ctx, target.Name())
//	log := logctx.FromContext(ctx)
//	log.Info().Msg("starting")
package logctx

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eunmann/vecbench/pkg/logging"
)

// loggerKey is the private key type for storing loggers in context.
type loggerKey struct{}

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context. If the context is nil
// or carries no logger, it returns the global logger from pkg/logging.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return *logging.L()
}

// WithStr returns a new context whose logger has the string field added.
func WithStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithInt returns a new context whose logger has the int field added.
func WithInt(ctx context.Context, key string, value int) context.Context {
	logger := FromContext(ctx).With().Int(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithTarget tags the context logger with a benchmark target name.
func WithTarget(ctx context.Context, name string) context.Context {
	return WithStr(ctx, "target", name)
}
