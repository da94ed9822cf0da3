package quantize

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-sixel/sixelenc/raster"
)

// sqDistance is the squared-Euclidean RGB distance, used by the median-cut
// quantizer's representative-color and lookup steps, as spec'd.
func sqDistance(a, b raster.Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// toColorful converts an 8-bit RGB triple to go-colorful's [0,1]-normalized
// representation, used only for the perceptual fallback metric.
func toColorful(c raster.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// nearestByLab scans the full palette and returns the index of the entry
// with the smallest CIE76 Lab distance to c. Used as the octree's fallback
// metric (see DESIGN.md, resolving spec.md's nearest-color Open Question)
// when a bit-Hamming sibling descent cannot find a candidate.
func nearestByLab(c raster.Color, palette []raster.Color) int {
	target := toColorful(c)
	best := 0
	bestDist := target.DistanceCIE76(toColorful(palette[0]))
	for i := 1; i < len(palette); i++ {
		d := target.DistanceCIE76(toColorful(palette[i]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
