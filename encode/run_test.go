package encode

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/willibrandon/mtlog"

	"github.com/go-sixel/sixelenc/raster"
	"github.com/go-sixel/sixelenc/sixel"
)

func TestRunSucceeds(t *testing.T) {
	r := raster.New(1, 1, []raster.Color{{R: 255, G: 0, B: 0}})
	var buf bytes.Buffer
	logger := mtlog.New()

	err := Run(context.Background(), logger, Request{
		Raster:  r,
		Writer:  &buf,
		Options: sixel.Options{PaletteSize: 2},
	})
	require.NoError(t, err)
	require.NotEmpty(t, buf.Bytes())
}

func TestRunHonorsCanceledContext(t *testing.T) {
	// A larger raster keeps the encode goroutine busy long enough that the
	// already-closed ctx.Done() case is the only one ready when Run's
	// select is first evaluated.
	pix := make([]raster.Color, 300*300)
	for i := range pix {
		pix[i] = raster.Color{R: uint8(i), G: uint8(i * 7), B: uint8(i * 13)}
	}
	r := raster.New(300, 300, pix)
	var buf bytes.Buffer
	logger := mtlog.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, logger, Request{
		Raster:  r,
		Writer:  &buf,
		Options: sixel.Options{PaletteSize: 2},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunPropagatesEncodeError(t *testing.T) {
	var buf bytes.Buffer
	logger := mtlog.New()

	err := Run(context.Background(), logger, Request{
		Raster:  nil,
		Writer:  &buf,
		Options: sixel.Options{PaletteSize: 2},
	})
	require.Error(t, err)
}

func TestRunDoesNotHangPastDeadline(t *testing.T) {
	r := raster.New(1, 1, []raster.Color{{R: 255, G: 0, B: 0}})
	var buf bytes.Buffer
	logger := mtlog.New()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Run(ctx, logger, Request{
		Raster:  r,
		Writer:  &buf,
		Options: sixel.Options{PaletteSize: 2},
	})
	require.NoError(t, err)
}
