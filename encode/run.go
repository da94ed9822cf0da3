// Package encode orchestrates one end-to-end sixel.Encode call with
// request-scoped logging and an optional cancellation deadline. This is the
// only layer above package sixel that logs or knows about context.Context —
// the core pipeline itself stays synchronous and logger-free (§5, §10).
package encode

import (
	"context"
	"io"
	"time"

	"github.com/willibrandon/mtlog/core"

	"github.com/go-sixel/sixelenc/internal/telemetry"
	"github.com/go-sixel/sixelenc/raster"
	"github.com/go-sixel/sixelenc/sixel"
)

// Request bundles one encode call's inputs.
type Request struct {
	Raster  *raster.Raster
	Writer  io.Writer
	Options sixel.Options
}

// Run executes req against ctx, logging start/completion through logger and
// honoring ctx's deadline: the encode runs on its own goroutine so a
// canceled ctx returns promptly even though package sixel has no
// cancellation points of its own.
func Run(ctx context.Context, logger core.Logger, req Request) error {
	ctx, opLogger := telemetry.WithRequestID(ctx, logger)

	width, height := 0, 0
	if req.Raster != nil {
		width, height = req.Raster.Width(), req.Raster.Height()
	}
	opLogger.Debug("encoding {Width}x{Height} raster, palette<={N}, dither={Dither}",
		width, height, req.Options.PaletteSize, req.Options.Dither)

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- sixel.Encode(req.Writer, req.Raster, req.Options)
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		if err != nil {
			opLogger.Error("encode failed after {Duration}: {Error}", duration, err)
			return err
		}
		opLogger.Debug("encode completed in {Duration}", duration)
		return nil
	case <-ctx.Done():
		opLogger.Error("encode canceled after {Duration}: {Error}", time.Since(start), ctx.Err())
		return ctx.Err()
	}
}
