// Package telemetry builds the structured logger used by cmd/gosixel and the
// encode orchestration package. The core packages (quantize, dither, sixel)
// take no logger, per spec.md §5/§10.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"
)

// New builds a console-sink mtlog logger at the given minimum level.
// Unrecognized levels fall back to warn, matching the CLI's default so a
// successful encode stays silent on stderr.
func New(logLevel string) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "info":
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	case "warn", "":
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	}

	return mtlog.New(opts...)
}

// WithRequestID stamps ctx with a fresh request id and returns both the
// tagged context and the logger bound to it, for the lifetime of one
// encode.Run invocation.
func WithRequestID(ctx context.Context, logger core.Logger) (context.Context, core.Logger) {
	ctx = mtlog.PushProperty(ctx, "RequestID", uuid.New().String()[:8])
	return ctx, logger.WithContext(ctx)
}
