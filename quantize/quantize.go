// Package quantize reduces an arbitrary raster.Raster to a palette of at
// most 256 representative colors and provides nearest-color lookup.
//
// Two interchangeable strategies are provided: Octree and MedianCut. Both
// satisfy the Quantizer interface and are interchangeable in the encode
// pipeline (see package sixel).
package quantize

import "github.com/go-sixel/sixelenc/raster"

// MaxColors is the hard ceiling on palette size, per the SIXEL register
// space (a single byte palette id).
const MaxColors = 256

// Quantizer builds a palette from a raster and maps colors to palette ids.
//
// Build consumes every pixel of the raster exactly once and must be called
// before IndexOf or Palette return meaningful results. IndexOf is a total
// function: for any color it returns a valid index into Palette(), using
// the quantizer's own nearest-color metric when the color isn't an exact
// member of the palette.
type Quantizer interface {
	// Build constructs the palette from raster r, clamping n to [1,256].
	// Build is infallible for any non-empty raster.
	Build(r *raster.Raster, n int)

	// IndexOf returns the palette id of the nearest representative color
	// to c. Deterministic function of c and the built palette alone.
	IndexOf(c raster.Color) int

	// Palette returns the built palette, in the order palette ids were
	// assigned. len(Palette()) <= n as passed to Build, and >= 1 for any
	// non-empty raster.
	Palette() []raster.Color
}

// clampN clamps the requested palette size to [1, MaxColors].
func clampN(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxColors {
		return MaxColors
	}
	return n
}
