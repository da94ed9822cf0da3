package sixel

import (
	"github.com/go-sixel/sixelenc/internal/assert"
	"github.com/go-sixel/sixelenc/quantize"
	"github.com/go-sixel/sixelenc/raster"
)

// bandHeight is the number of rows OR'd into one sixel column.
const bandHeight = 6

// run is one (sixel_byte, run_length) pair.
type run struct {
	sixel byte // raw 6-bit value in [0,63]
	count int
}

// colorGroup is one palette color's run sequence within a single band.
type colorGroup struct {
	id   int
	runs []run
}

// packBand walks rows [startRow, startRow+height) of r (height <= bandHeight,
// shorter only for the final band), assigns each pixel its palette id via q,
// and builds one colorGroup per palette id that appears anywhere in the
// band. Each group's byte array spans the full band width, so the
// full-width run-length encoding trivially satisfies the Σrun_length == W
// invariant — leading/trailing zero bytes fall out of the plain RLE rather
// than needing special-cased padding.
func packBand(r *raster.Raster, q quantize.Quantizer, startRow, height int) []colorGroup {
	w := r.Width()
	ids := make([][]int, height)
	seen := make(map[int]bool)
	for i := 0; i < height; i++ {
		row := make([]int, w)
		for x := 0; x < w; x++ {
			id := q.IndexOf(r.At(x, startRow+i))
			row[x] = id
			seen[id] = true
		}
		ids[i] = row
	}

	ordered := sortedIntKeys(seen)
	groups := make([]colorGroup, 0, len(ordered))
	for _, id := range ordered {
		bytes := make([]byte, w)
		for i := 0; i < height; i++ {
			row := ids[i]
			for x := 0; x < w; x++ {
				if row[x] == id {
					bytes[x] |= 1 << uint(i)
				}
			}
		}
		runs := runLengthEncode(bytes)
		groups = append(groups, colorGroup{id: id, runs: runs})
	}
	return groups
}

func runLengthEncode(bytes []byte) []run {
	runs := make([]run, 0, len(bytes))
	total := 0
	for _, b := range bytes {
		if n := len(runs); n > 0 && runs[n-1].sixel == b {
			runs[n-1].count++
		} else {
			runs = append(runs, run{sixel: b, count: 1})
		}
		total++
	}
	sum := 0
	for _, rn := range runs {
		sum += rn.count
	}
	assert.That(sum == len(bytes), "band RLE run-length sum %d != width %d", sum, len(bytes))
	return runs
}

func sortedIntKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
