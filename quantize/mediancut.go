package quantize

import "github.com/go-sixel/sixelenc/raster"

type splitAxis int

const (
	axisRed splitAxis = iota
	axisGreen
	axisBlue
)

// vbox is an axis-aligned box in the 5-bit quantized RGB cube.
type vbox struct {
	rMin, rMax, gMin, gMax, bMin, bMax uint8
	counts                             [rgbComponentSize]uint32 // per-slice counts along axis
	volume                             int
	axis                               splitAxis
}

func bucketIndex5(r, g, b uint8) uint16 {
	return uint16(r)<<10 | uint16(g)<<5 | uint16(b)
}

// buildVBox scans the enclosed buckets of the given bounds, shrinks to the
// tight envelope of populated cells, and records the split axis (largest
// extent, ties broken R>G>B) and its per-slice counts.
func buildVBox(h *colorHist, rMin, rMax, gMin, gMax, bMin, bMax uint8) vbox {
	newRMin, newGMin, newBMin := uint8(rgbComponentSize-1), uint8(rgbComponentSize-1), uint8(rgbComponentSize-1)
	newRMax, newGMax, newBMax := uint8(0), uint8(0), uint8(0)
	for r := rMin; ; r++ {
		for g := gMin; ; g++ {
			for b := bMin; ; b++ {
				if h.counts[bucketIndex5(r, g, b)] > 0 {
					if r < newRMin {
						newRMin = r
					}
					if r > newRMax {
						newRMax = r
					}
					if g < newGMin {
						newGMin = g
					}
					if g > newGMax {
						newGMax = g
					}
					if b < newBMin {
						newBMin = b
					}
					if b > newBMax {
						newBMax = b
					}
				}
				if b == bMax {
					break
				}
			}
			if g == gMax {
				break
			}
		}
		if r == rMax {
			break
		}
	}

	rDelta := int(newRMax) - int(newRMin) + 1
	gDelta := int(newGMax) - int(newGMin) + 1
	bDelta := int(newBMax) - int(newBMin) + 1
	maxDelta := rDelta
	axis := axisRed
	if gDelta > maxDelta {
		maxDelta = gDelta
		axis = axisGreen
	}
	if bDelta > maxDelta {
		maxDelta = bDelta
		axis = axisBlue
	}

	v := vbox{
		rMin: newRMin, rMax: newRMax,
		gMin: newGMin, gMax: newGMax,
		bMin: newBMin, bMax: newBMax,
		volume: rDelta * gDelta * bDelta,
		axis:   axis,
	}
	for r := newRMin; ; r++ {
		for g := newGMin; ; g++ {
			for b := newBMin; ; b++ {
				cnt := h.counts[bucketIndex5(r, g, b)]
				if cnt > 0 {
					switch axis {
					case axisRed:
						v.counts[r] += cnt
					case axisGreen:
						v.counts[g] += cnt
					case axisBlue:
						v.counts[b] += cnt
					}
				}
				if b == newBMax {
					break
				}
			}
			if g == newGMax {
				break
			}
		}
		if r == newRMax {
			break
		}
	}
	return v
}

// splittable reports whether the box's extent on its own split axis is
// greater than one slice — the stop condition queue.has_splittable checks.
func (v vbox) splittable() bool {
	switch v.axis {
	case axisRed:
		return int(v.rMax)-int(v.rMin) > 0
	case axisGreen:
		return int(v.gMax)-int(v.gMin) > 0
	default:
		return int(v.bMax)-int(v.bMin) > 0
	}
}

// split divides v along its split axis at the slice boundary whose
// cumulative count most closely approaches half the box's total count.
func (v vbox) split(h *colorHist) (vbox, vbox) {
	var start, end uint8
	switch v.axis {
	case axisRed:
		start, end = v.rMin, v.rMax
	case axisGreen:
		start, end = v.gMin, v.gMax
	default:
		start, end = v.bMin, v.bMax
	}

	var total int64
	for i := start; i <= end; i++ {
		total += int64(v.counts[i])
	}
	half := total / 2

	bestSplit := start
	bestDiff := total + 1
	var cumulative int64
	for i := start; i < end; i++ {
		cumulative += int64(v.counts[i])
		diff := cumulative - half
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i
		}
	}

	switch v.axis {
	case axisRed:
		return buildVBox(h, v.rMin, bestSplit, v.gMin, v.gMax, v.bMin, v.bMax),
			buildVBox(h, bestSplit+1, v.rMax, v.gMin, v.gMax, v.bMin, v.bMax)
	case axisGreen:
		return buildVBox(h, v.rMin, v.rMax, v.gMin, bestSplit, v.bMin, v.bMax),
			buildVBox(h, v.rMin, v.rMax, bestSplit+1, v.gMax, v.bMin, v.bMax)
	default:
		return buildVBox(h, v.rMin, v.rMax, v.gMin, v.gMax, v.bMin, bestSplit),
			buildVBox(h, v.rMin, v.rMax, v.gMin, v.gMax, bestSplit+1, v.bMax)
	}
}

// vboxQueue holds candidate boxes ascending by volume; pop removes the
// tail (largest), matching spec.md's priority-queue contract.
type vboxQueue []vbox

func (q *vboxQueue) put(v vbox) {
	i := 0
	for i < len(*q) && (*q)[i].volume < v.volume {
		i++
	}
	*q = append(*q, vbox{})
	copy((*q)[i+1:], (*q)[i:])
	(*q)[i] = v
}

func (q *vboxQueue) pop() vbox {
	last := len(*q) - 1
	v := (*q)[last]
	*q = (*q)[:last]
	return v
}

func (q *vboxQueue) peek() vbox {
	return (*q)[len(*q)-1]
}

// representativeColor computes a box's representative bucket: the
// occupancy-weighted mean bucket index, dequantized, then snapped to the
// nearest populated bucket by squared-RGB distance.
func representativeColor(h *colorHist, v vbox) (uint16, raster.Color) {
	var sumBucket, sumCount uint64
	type populated struct {
		id    uint16
		color raster.Color
	}
	var pops []populated
	for r := v.rMin; ; r++ {
		for g := v.gMin; ; g++ {
			for b := v.bMin; ; b++ {
				id := bucketIndex5(r, g, b)
				cnt := h.counts[id]
				if cnt > 0 {
					sumBucket += uint64(id) * uint64(cnt)
					sumCount += uint64(cnt)
					pops = append(pops, populated{id, u16ToRGB(id)})
				}
				if b == v.bMax {
					break
				}
			}
			if g == v.gMax {
				break
			}
		}
		if r == v.rMax {
			break
		}
	}
	if sumCount == 0 {
		return 0, raster.Color{}
	}
	avg := u16ToRGB(uint16(sumBucket / sumCount))
	best := pops[0]
	bestDist := sqDistance(best.color, avg)
	for _, p := range pops[1:] {
		if d := sqDistance(p.color, avg); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best.id, best.color
}

// medianCutEntry is one resolved palette color, keyed by its representative
// bucket for the sorted lookup table.
type medianCutEntry struct {
	bucket       uint16
	paletteIndex int
}

// medianCutSplit runs the recursive box-split algorithm over a histogram
// that has more than n occupied buckets.
func medianCutSplit(h *colorHist, n int) ([]raster.Color, []medianCutEntry) {
	var queue vboxQueue
	queue.put(buildVBox(h, 0, rgbComponentSize-1, 0, rgbComponentSize-1, 0, rgbComponentSize-1))

	for len(queue) < n && queue.peek().splittable() {
		top := queue.pop()
		left, right := top.split(h)
		queue.put(left)
		queue.put(right)
	}

	palette := make([]raster.Color, 0, len(queue))
	entries := make([]medianCutEntry, 0, len(queue))
	for _, v := range queue {
		bucket, color := representativeColor(h, v)
		entries = append(entries, medianCutEntry{bucket: bucket, paletteIndex: len(palette)})
		palette = append(palette, color)
	}
	return palette, entries
}

// MedianCut is the histogram-based Quantizer.
type MedianCut struct {
	palette []raster.Color
	entries []medianCutEntry // sorted ascending by bucket
	cache   map[uint16]int
}

const medianCutCacheLimit = 4096

// Build scans r into a 32768-bucket histogram; if the number of occupied
// buckets is at most n, every bucket becomes a palette entry directly,
// otherwise the recursive median-cut split (§4.3) produces the palette.
func (q *MedianCut) Build(r *raster.Raster, n int) {
	n = clampN(n)
	h := buildHistogram(r)
	k := h.nonZeroBuckets()

	if k <= n {
		palette := make([]raster.Color, 0, k)
		entries := make([]medianCutEntry, 0, k)
		for id := 0; id < maxHistColors; id++ {
			if h.counts[id] > 0 {
				entries = append(entries, medianCutEntry{bucket: uint16(id), paletteIndex: len(palette)})
				palette = append(palette, u16ToRGB(uint16(id)))
			}
		}
		q.palette = palette
		q.entries = entries
	} else {
		q.palette, q.entries = medianCutSplit(h, n)
		sortEntriesByBucket(q.entries)
	}
	q.cache = make(map[uint16]int)
}

func sortEntriesByBucket(e []medianCutEntry) {
	for i := 1; i < len(e); i++ {
		for j := i; j > 0 && e[j].bucket < e[j-1].bucket; j-- {
			e[j], e[j-1] = e[j-1], e[j]
		}
	}
}

// IndexOf buckets c, binary-searches the sorted bucket table for the
// closest entries by scalar bucket index, then picks whichever neighbor is
// nearest by squared-RGB distance to c's dequantized bucket color — the
// cheap scalar search narrows the candidates, the RGB distance breaks the
// tie. The result depends only on c's bucket, so the bucket-keyed cache
// never changes it.
func (q *MedianCut) IndexOf(c raster.Color) int {
	if len(q.palette) == 0 {
		return 0
	}
	bucket := rgbToU16(c)
	key := u16ToRGB(bucket)
	if idx, ok := q.cache[bucket]; ok {
		return idx
	}

	lo, hi := 0, len(q.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if q.entries[mid].bucket < bucket {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	best := -1
	bestDist := -1
	consider := func(i int) {
		if i < 0 || i >= len(q.entries) {
			return
		}
		d := sqDistance(key, q.palette[q.entries[i].paletteIndex])
		if best == -1 || d < bestDist {
			best = q.entries[i].paletteIndex
			bestDist = d
		}
	}
	consider(lo - 1)
	consider(lo)

	if len(q.cache) < medianCutCacheLimit {
		q.cache[bucket] = best
	}
	return best
}

// Palette returns the built palette.
func (q *MedianCut) Palette() []raster.Color {
	return q.palette
}
