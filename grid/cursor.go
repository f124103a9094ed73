// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package grid

import "sort"

// entry is one block a Cursor will visit: its flat index and the
// periodic offset that must be added to any position read from it to
// bring it back into the querying frame (zero on a non-periodic axis,
// or when the block needed no wrapping).
type entry struct {
	block  int
	offset [3]float64
	minSq  float64
}

// Cursor enumerates the grid blocks that can contain a particle
// relevant to a query (a ball or a box), wrapping across periodic
// boundaries and reporting the offset each returned block's particles
// must be shifted by. A ball cursor visits blocks in ascending order
// of their minimum possible distance to the query center — a shell
// order — so a caller doing a nearest-neighbour style search can stop
// as soon as its current best beats the next block's lower bound.
type Cursor struct {
	entries []entry
	pos     int
}

// wrapRange lists, for a coordinate range [lo, hi] measured in block
// units (not yet wrapped) along one axis, every (wrapped index, image
// count) pair needed to cover it. A non-periodic axis is clamped to
// [0, n).
func wrapRange(lo, hi, n int, periodic bool) []struct{ idx, image int } {
	var out []struct{ idx, image int }
	if !periodic {
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		for i := lo; i <= hi; i++ {
			out = append(out, struct{ idx, image int }{i, 0})
		}
		return out
	}
	// Periodic: cap the swept range to one full period either side of
	// its midpoint block so a pathologically large radius cannot force
	// an unbounded scan; the images dropped at both ends are strictly
	// farther than the ones kept and irrelevant to a shell search.
	if hi-lo+1 > 2*n+2 {
		lo, hi = lo+(hi-lo)/2-n, lo+(hi-lo+1)/2+n
	}
	for i := lo; i <= hi; i++ {
		wrapped := ((i % n) + n) % n
		image := (i - wrapped) / n
		out = append(out, struct{ idx, image int }{wrapped, image})
	}
	return out
}

func blockRange(center, r, a, b float64, n int) (lo, hi int) {
	width := (b - a) / float64(n)
	lo = int(floorDiv(center-r-a, width))
	hi = int(floorDiv(center+r-a, width))
	return lo, hi
}

func floorDiv(v, width float64) float64 {
	q := v / width
	if q < 0 {
		return q - 1
	}
	return q
}

// NewBallCursor returns a Cursor over every block that could contain a
// point within r of (vx, vy, vz), ordered nearest-first.
func NewBallCursor(g *Grid, vx, vy, vz, r float64) *Cursor {
	ai, bi := blockRange(vx, r, g.Ax, g.Bx, g.Nx)
	aj, bj := blockRange(vy, r, g.Ay, g.By, g.Ny)
	ak, bk := blockRange(vz, r, g.Az, g.Bz, g.Nz)

	dx, dy, dz := g.BoxSize()
	xs := wrapRange(ai, bi, g.Nx, g.Xperiodic)
	ys := wrapRange(aj, bj, g.Ny, g.Yperiodic)
	zs := wrapRange(ak, bk, g.Nz, g.Zperiodic)

	type imageKey struct{ block, ix, iy, iz int }
	seen := make(map[imageKey]bool)
	var entries []entry
	for _, iz := range zs {
		for _, iy := range ys {
			for _, ix := range xs {
				b := Index(ix.idx, iy.idx, iz.idx, g.Nx, g.Ny)
				ox := float64(ix.image) * (g.Bx - g.Ax)
				oy := float64(iy.image) * (g.By - g.Ay)
				oz := float64(iz.image) * (g.Bz - g.Az)
				key := imageKey{b, ix.image, iy.image, iz.image}
				if seen[key] {
					continue
				}
				seen[key] = true
				lox := g.Ax + float64(ix.idx)*dx + ox
				loy := g.Ay + float64(iy.idx)*dy + oy
				loz := g.Az + float64(iz.idx)*dz + oz
				min2 := axisGapSq(vx, lox, lox+dx) + axisGapSq(vy, loy, loy+dy) + axisGapSq(vz, loz, loz+dz)
				entries = append(entries, entry{block: b, offset: [3]float64{ox, oy, oz}, minSq: min2})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].minSq < entries[j].minSq })
	return &Cursor{entries: entries}
}

// axisGapSq returns the squared distance from v to the nearest point
// of [lo, hi] along one axis, zero if v already falls inside it.
func axisGapSq(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		d := lo - v
		return d * d
	case v > hi:
		d := v - hi
		return d * d
	default:
		return 0
	}
}

// NewBoxCursor returns a Cursor over every block overlapping the given
// axis-aligned box, in raster order (no shell ordering, since a box
// query has no meaningful "nearest first" direction).
func NewBoxCursor(g *Grid, xmin, xmax, ymin, ymax, zmin, zmax float64) *Cursor {
	ai, bi := blockRange((xmin+xmax)/2, (xmax-xmin)/2, g.Ax, g.Bx, g.Nx)
	aj, bj := blockRange((ymin+ymax)/2, (ymax-ymin)/2, g.Ay, g.By, g.Ny)
	ak, bk := blockRange((zmin+zmax)/2, (zmax-zmin)/2, g.Az, g.Bz, g.Nz)

	xs := wrapRange(ai, bi, g.Nx, g.Xperiodic)
	ys := wrapRange(aj, bj, g.Ny, g.Yperiodic)
	zs := wrapRange(ak, bk, g.Nz, g.Zperiodic)

	var entries []entry
	for _, iz := range zs {
		for _, iy := range ys {
			for _, ix := range xs {
				b := Index(ix.idx, iy.idx, iz.idx, g.Nx, g.Ny)
				ox := float64(ix.image) * (g.Bx - g.Ax)
				oy := float64(iy.image) * (g.By - g.Ay)
				oz := float64(iz.image) * (g.Bz - g.Az)
				entries = append(entries, entry{block: b, offset: [3]float64{ox, oy, oz}})
			}
		}
	}
	return &Cursor{entries: entries}
}

// Next returns the next block to visit and the offset to add to its
// stored particle positions, or ok=false once every block has been
// returned.
func (c *Cursor) Next() (block int, offset [3]float64, ok bool) {
	if c.pos >= len(c.entries) {
		return 0, [3]float64{}, false
	}
	e := c.entries[c.pos]
	c.pos++
	return e.block, e.offset, true
}

// Reset rewinds the cursor to its first block.
func (c *Cursor) Reset() {
	c.pos = 0
}

// PeekMinDistSq returns the minimum possible squared distance from the
// query center to the next block Next would return, without consuming
// it. The second result is false once the cursor is exhausted. On a
// Cursor returned by NewBoxCursor every entry's bound is zero, since a
// box query has no meaningful shell order; PeekMinDistSq is only
// useful for early-termination against a NewBallCursor.
func (c *Cursor) PeekMinDistSq() (float64, bool) {
	if c.pos >= len(c.entries) {
		return 0, false
	}
	return c.entries[c.pos].minSq, true
}

// Len reports the total number of blocks this cursor will visit.
func (c *Cursor) Len() int {
	return len(c.entries)
}
