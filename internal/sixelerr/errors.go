// Package sixelerr defines the sentinel errors the core pipeline returns
// for invalid input, per spec.md §7.
package sixelerr

import "errors"

// ErrInvalidInput is the umbrella sentinel for rejected caller input.
var ErrInvalidInput = errors.New("sixelenc: invalid input")

// ErrEmptyRaster reports a missing (nil) raster. sixel.Encode returns it
// wrapped together with ErrInvalidInput.
var ErrEmptyRaster = errors.New("sixelenc: empty raster")

// ErrPaletteSize reports a requested palette size of 0. sixel.Encode
// returns it wrapped together with ErrInvalidInput.
var ErrPaletteSize = errors.New("sixelenc: palette size must be at least 1")
