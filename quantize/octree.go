package quantize

import "github.com/go-sixel/sixelenc/raster"

// maxLevel is the number of bit-splits the octree performs, one per bit of
// an 8-bit channel. Splits happen at levels 1..maxLevel; leaves live one
// level deeper, at leafLevel. original_source/src/octree.rs stops splitting
// at level MAX_LEVEL-1 and so never consumes each channel's bit 0 — two
// colors differing only in their low bit collapse into the same leaf before
// any reduction. Going one level deeper here is the fix for that, not a
// copy of the original.
const maxLevel = 8
const leafLevel = maxLevel + 1

// octreeChildIndex returns the 3-bit child slot for c at the given 1-based
// split level (1..maxLevel): idx = (bitR<<2)|(bitG<<1)|bitB using bit
// (maxLevel-level) of each channel, so level 1 consumes bit 7 and level
// maxLevel consumes bit 0 — every bit of every channel is walked.
func octreeChildIndex(level int, c raster.Color) int {
	shift := uint(maxLevel - level)
	bitR := (c.R >> shift) & 1
	bitG := (c.G >> shift) & 1
	bitB := (c.B >> shift) & 1
	return int(bitR)<<2 | int(bitG)<<1 | int(bitB)
}

// noChild marks an absent child slot.
const noChild = -1

type onode struct {
	sumR, sumG, sumB uint64
	count            uint64
	children         [8]int
	isLeaf           bool
	queued           bool // already recorded in the reducible queue for its level
	paletteIndex     int
}

func newONode() onode {
	n := onode{}
	for i := range n.children {
		n.children[i] = noChild
	}
	return n
}

// octreeID addresses a node by its 1-based level and index within that
// level's arena slice.
type octreeID struct {
	level int
	index int
}

// octree is an arena-backed spatial-subdivision tree: nodes live in
// per-level slices addressed by integer id, so there are no pointer cycles
// between parent and child — only integer references, matching
// original_source's level-sliced arena (see DESIGN.md).
type octree struct {
	levels    [leafLevel][]onode
	reducible [maxLevel][]octreeID // indices 0..maxLevel-1 => levels 1..maxLevel
	leafCount int
}

func newOctree() *octree {
	o := &octree{}
	o.levels[0] = append(o.levels[0], newONode())
	return o
}

func (o *octree) node(id octreeID) *onode {
	return &o.levels[id.level-1][id.index]
}

// insert walks from the pre-allocated level-1 root, creating children
// lazily, and accumulates color at the level-leafLevel leaf.
func (o *octree) insert(c raster.Color) {
	id := octreeID{level: 1, index: 0}
	for id.level <= maxLevel {
		childIdx := octreeChildIndex(id.level, c)
		parent := o.node(id)
		next := parent.children[childIdx]
		if next == noChild {
			if !parent.queued {
				parent.queued = true
				o.reducible[id.level-1] = append(o.reducible[id.level-1], id)
			}
			childLevel := id.level + 1
			next = len(o.levels[childLevel-1])
			o.levels[childLevel-1] = append(o.levels[childLevel-1], newONode())
			// re-fetch parent: appending to levels[id.level-1] above never
			// happens (we appended to the child level), so parent pointer
			// is still valid.
			o.node(id).children[childIdx] = next
			id = octreeID{level: childLevel, index: next}
		} else {
			id = octreeID{level: id.level + 1, index: next}
		}
	}
	leaf := o.node(id)
	if leaf.count == 0 {
		o.leafCount++
	}
	leaf.isLeaf = true
	leaf.sumR += uint64(c.R)
	leaf.sumG += uint64(c.G)
	leaf.sumB += uint64(c.B)
	leaf.count++
}

// reduceTo merges reducible parents, deepest level first, until the leaf
// count is at most n.
func (o *octree) reduceTo(n int) {
	for level := maxLevel; level >= 1 && o.leafCount > n; level-- {
		queue := o.reducible[level-1]
		i := 0
		for ; i < len(queue) && o.leafCount > n; i++ {
			o.pruneNode(queue[i], level)
		}
		o.reducible[level-1] = queue[i:]
	}
}

// pruneNode folds every child of the node at (level,index) into the node
// itself (summing rgb and count) and drops the children, making the node a
// leaf. Children are always leaves themselves at the time they're folded,
// because reduction processes the deepest reducible level first.
func (o *octree) pruneNode(id octreeID, level int) {
	node := o.node(id)
	folded := 0
	for i, childIdx := range node.children {
		if childIdx == noChild {
			continue
		}
		child := o.node(octreeID{level: level + 1, index: childIdx})
		node.sumR += child.sumR
		node.sumG += child.sumG
		node.sumB += child.sumB
		node.count += child.count
		child.isLeaf = false
		node.children[i] = noChild
		folded++
	}
	node.isLeaf = true
	if folded > 0 {
		o.leafCount -= folded - 1
	}
}

// finalize assigns palette ids to every leaf in breadth-first (level) order
// and returns the resulting palette.
func (o *octree) finalize() []raster.Color {
	palette := make([]raster.Color, 0, o.leafCount)
	for level := 1; level <= leafLevel; level++ {
		nodes := o.levels[level-1]
		for i := range nodes {
			n := &nodes[i]
			if n.isLeaf && n.count > 0 {
				n.paletteIndex = len(palette)
				palette = append(palette, raster.Color{
					R: uint8(n.sumR / n.count),
					G: uint8(n.sumG / n.count),
					B: uint8(n.sumB / n.count),
				})
			}
		}
	}
	return palette
}

// lookup descends the tree toward c. If the exact child is absent at some
// level, it picks the present sibling minimizing per-axis bit-Hamming
// distance to the wanted child slot (ties broken by slot order), and
// continues descending from there. If a node has no children at all (can
// only happen if the whole tree reduced to a single root leaf, or via the
// sibling fallback landing on a leaf early), it stops and returns that
// leaf's palette index.
func (o *octree) lookup(c raster.Color) int {
	id := octreeID{level: 1, index: 0}
	for {
		node := o.node(id)
		if node.isLeaf {
			return node.paletteIndex
		}
		wanted := octreeChildIndex(id.level, c)
		if node.children[wanted] != noChild {
			id = octreeID{level: id.level + 1, index: node.children[wanted]}
			continue
		}
		best := -1
		bestDist := 4
		for slot, childIdx := range node.children {
			if childIdx == noChild {
				continue
			}
			d := bitHamming3(wanted, slot)
			if d < bestDist {
				bestDist = d
				best = childIdx
			}
		}
		if best == noChild {
			// No sibling at all under this node: signal the caller to fall
			// back to a full-palette scan instead of looping forever.
			return -1
		}
		id = octreeID{level: id.level + 1, index: best}
	}
}

// bitHamming3 counts differing bits between two 3-bit values, viewed as
// three independent 1-bit axes, per spec.md's popcount tie-break.
func bitHamming3(a, b int) int {
	d := a ^ b
	count := 0
	for i := 0; i < 3; i++ {
		if d&(1<<uint(i)) != 0 {
			count++
		}
	}
	return count
}

// Octree is the spatial-subdivision Quantizer.
type Octree struct {
	tree    *octree
	palette []raster.Color
}

// Build consumes every pixel of r exactly once, inserting into an octree of
// depth maxLevel, then reduces to at most n leaves and assembles the
// palette in breadth-first order.
func (q *Octree) Build(r *raster.Raster, n int) {
	n = clampN(n)
	t := newOctree()
	w, h := r.Width(), r.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.insert(r.At(x, y))
		}
	}
	t.reduceTo(n)
	q.tree = t
	q.palette = t.finalize()
}

// IndexOf descends the octree toward c, falling back to the sibling with
// the smallest bit-Hamming distance when the exact path is absent, and to a
// full-palette CIE76-distance scan (see DESIGN.md) if the descent cannot
// resolve any candidate at all.
func (q *Octree) IndexOf(c raster.Color) int {
	if q.tree == nil || len(q.palette) == 0 {
		return 0
	}
	if idx := q.tree.lookup(c); idx >= 0 {
		return idx
	}
	return nearestByLab(c, q.palette)
}

// Palette returns the built palette in assignment order.
func (q *Octree) Palette() []raster.Color {
	return q.palette
}
