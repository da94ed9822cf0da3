package sixel

import "github.com/go-sixel/sixelenc/quantize"

// Algorithm selects which Quantizer strategy Encode builds the palette with.
type Algorithm int

const (
	// AlgorithmOctree builds the palette via spatial subdivision (§4.2).
	AlgorithmOctree Algorithm = iota
	// AlgorithmMedianCut builds the palette via histogram box-splitting (§4.3).
	AlgorithmMedianCut
)

// Options configures one Encode call.
type Options struct {
	// PaletteSize is the requested maximum palette size, clamped to
	// [1,256] by the chosen Quantizer's Build.
	PaletteSize int
	// Dither enables Floyd-Steinberg error diffusion before packing.
	Dither bool
	// Debug inserts readability newlines into the stream (§12), breaking
	// byte-exact output — never set this for a payload meant to be
	// rendered.
	Debug bool
	// Algorithm picks the quantizer strategy. Zero value is AlgorithmOctree.
	Algorithm Algorithm
}

func (o Options) newQuantizer() quantize.Quantizer {
	switch o.Algorithm {
	case AlgorithmMedianCut:
		return &quantize.MedianCut{}
	default:
		return &quantize.Octree{}
	}
}
