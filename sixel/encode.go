// Package sixel implements the color-quantization + sixel-packing core:
// B quantizer build, optional C Floyd-Steinberg dither, D band packing, E
// stream emission, per spec.md §2.
package sixel

import (
	"fmt"
	"io"

	"github.com/go-sixel/sixelenc/dither"
	"github.com/go-sixel/sixelenc/internal/sixelerr"
	"github.com/go-sixel/sixelenc/raster"
)

// Encode runs B -> (optional) C -> D -> E against r and writes the
// resulting SIXEL byte stream to w. It is the entry point for a full
// encode; package encode calls it, and cmd/gosixel reaches it through
// encode.Run.
func Encode(w io.Writer, r *raster.Raster, opts Options) error {
	if r == nil {
		return fmt.Errorf("%w: %w", sixelerr.ErrInvalidInput, sixelerr.ErrEmptyRaster)
	}
	if opts.PaletteSize == 0 {
		return fmt.Errorf("%w: %w", sixelerr.ErrInvalidInput, sixelerr.ErrPaletteSize)
	}

	q := opts.newQuantizer()
	q.Build(r, opts.PaletteSize)

	working := r
	if opts.Dither {
		working = dither.FloydSteinberg(r, q)
	}

	return emitStream(w, working, q, opts)
}
