// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package grid implements the spatial subdivision that lets Voronoi
// cell computation examine only nearby particles: an axis-aligned box
// divided into Nx*Ny*Nz computational blocks, each holding the ids and
// positions of the particles that currently fall inside it.
package grid

import "math"

// Grid holds particles in a regular Nx x Ny x Nz block subdivision of
// an axis-aligned box, with independent per-axis periodicity. Blocks
// grow their own ID/P slices on demand; there is no shared arena.
type Grid struct {
	Ax, Bx, Ay, By, Az, Bz float64
	Nx, Ny, Nz             int
	Xperiodic              bool
	Yperiodic              bool
	Zperiodic              bool
	// Radical marks that P entries carry a fourth (weight) component.
	Radical bool

	// ID[b] lists the particle ids currently filed in block b.
	ID [][]int
	// P[b] packs each block's particle coordinates: 3 floats per
	// particle (x, y, z), or 4 when Radical is set (x, y, z, r).
	P [][]float64

	maxWeight float64
}

// stride is 3 for a plain grid, 4 for a radical (weighted) one.
func (g *Grid) stride() int {
	if g.Radical {
		return 4
	}
	return 3
}

// NewGrid returns an empty grid over the given box, subdivided into
// nx*ny*nz blocks, with the given per-axis periodicity.
func NewGrid(ax, bx, ay, by, az, bz float64, nx, ny, nz int, periodic [3]bool, radical bool) *Grid {
	g := &Grid{
		Ax: ax, Bx: bx, Ay: ay, By: by, Az: az, Bz: bz,
		Nx: nx, Ny: ny, Nz: nz,
		Xperiodic: periodic[0], Yperiodic: periodic[1], Zperiodic: periodic[2],
		Radical: radical,
	}
	g.Clear()
	return g
}

// Clear empties every block and resets the tracked maximum weight.
func (g *Grid) Clear() {
	n := g.Nx * g.Ny * g.Nz
	g.ID = make([][]int, n)
	g.P = make([][]float64, n)
	g.maxWeight = 0
}

// blockOf maps a domain coordinate to its (possibly wrapped) block
// index along one axis, reporting ErrOutOfDomain if the coordinate is
// out of range on a non-periodic axis.
func blockOf(v, a, b float64, n int, periodic bool) (int, float64, error) {
	width := b - a
	frac := (v - a) / width
	idx := int(math.Floor(frac * float64(n)))
	if periodic {
		wrapped := ((idx % n) + n) % n
		return wrapped, v - width*float64((idx-wrapped)/n), nil
	}
	if idx < 0 || idx >= n {
		return 0, 0, ErrOutOfDomain
	}
	return idx, v, nil
}

func (g *Grid) blockIndex(x, y, z float64) (block int, wx, wy, wz float64, err error) {
	i, wx, err := blockOf(x, g.Ax, g.Bx, g.Nx, g.Xperiodic)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	j, wy, err := blockOf(y, g.Ay, g.By, g.Ny, g.Yperiodic)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	k, wz, err := blockOf(z, g.Az, g.Bz, g.Nz, g.Zperiodic)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return Index(i, j, k, g.Nx, g.Ny), wx, wy, wz, nil
}

// Index folds 3-D block coordinates into a flat block index, the same
// row-major convention used throughout the package.
func Index(i, j, k, nx, ny int) int {
	return i + nx*(j+ny*k)
}

// Put files a particle at (x, y, z) into its containing block.
// Periodic axes wrap the coordinate back into the domain first;
// non-periodic axes reject an out-of-bounds coordinate.
func (g *Grid) Put(id int, x, y, z float64) error {
	block, wx, wy, wz, err := g.blockIndex(x, y, z)
	if err != nil {
		return err
	}
	g.ID[block] = append(g.ID[block], id)
	g.P[block] = append(g.P[block], wx, wy, wz)
	return nil
}

// PutRadical files a weighted particle for a radical (power) diagram.
// The largest weight seen is tracked for MaxWeight.
func (g *Grid) PutRadical(id int, x, y, z, r float64) error {
	block, wx, wy, wz, err := g.blockIndex(x, y, z)
	if err != nil {
		return err
	}
	g.ID[block] = append(g.ID[block], id)
	g.P[block] = append(g.P[block], wx, wy, wz, r)
	if r > g.maxWeight {
		g.maxWeight = r
	}
	return nil
}

// MaxWeight returns the largest weight passed to PutRadical since the
// last Clear; it bounds how far a radical cell computation's search
// radius must extend past the geometric Voronoi radius.
func (g *Grid) MaxWeight() float64 {
	return g.maxWeight
}

// BlockCount is one entry of RegionCount's per-block census.
type BlockCount struct {
	Block   int
	I, J, K int
	Count   int
}

// RegionCount reports how many particles occupy each block, in block
// order. It is a diagnostic for judging whether Nx/Ny/Nz gives a
// reasonably even load, mirroring the source material's region_count.
func (g *Grid) RegionCount() []BlockCount {
	counts := make([]BlockCount, 0, len(g.ID))
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				b := Index(i, j, k, g.Nx, g.Ny)
				counts = append(counts, BlockCount{Block: b, I: i, J: j, K: k, Count: len(g.ID[b])})
			}
		}
	}
	return counts
}

// Particle returns the position (and, in radical mode, the weight) of
// the q-th particle stored in block b.
func (g *Grid) Particle(b, q int) (id int, x, y, z, r float64) {
	stride := g.stride()
	base := q * stride
	p := g.P[b]
	x, y, z = p[base], p[base+1], p[base+2]
	if g.Radical {
		r = p[base+3]
	}
	return g.ID[b][q], x, y, z, r
}

// BoxSize returns the width of a single block along each axis.
func (g *Grid) BoxSize() (dx, dy, dz float64) {
	return (g.Bx - g.Ax) / float64(g.Nx), (g.By - g.Ay) / float64(g.Ny), (g.Bz - g.Az) / float64(g.Nz)
}
