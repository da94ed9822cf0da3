package sixel

import "github.com/go-sixel/sixelenc/raster"

// Palette builds and returns the palette Encode would use for r and opts,
// without packing or emitting. cmd/gosixel's -debug preview calls this
// separately from Encode, trading a second quantizer Build for keeping the
// core Encode path free of a "give me the palette back" side channel.
func Palette(r *raster.Raster, opts Options) []raster.Color {
	q := opts.newQuantizer()
	q.Build(r, opts.PaletteSize)
	return q.Palette()
}
