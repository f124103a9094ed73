// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voroutil provides utility functions for generating and
// manipulating seed points for Voronoi and radical tessellations.
package voroutil

import (
	"math/rand"

	"github.com/2dChan/voro"
)

// Seed is a single filed particle: an id, its position, and (in
// radical mode) its weight.
type Seed struct {
	ID         int
	X, Y, Z, R float64
}

// GenerateRandomPoints generates cnt random points uniformly
// distributed inside box. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, box voro.Box, seed int64) []Seed {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	pts := make([]Seed, cnt)
	for i := range pts {
		pts[i] = Seed{
			ID: i,
			X:  box.Xmin + random.Float64()*(box.Xmax-box.Xmin),
			Y:  box.Ymin + random.Float64()*(box.Ymax-box.Ymin),
			Z:  box.Zmin + random.Float64()*(box.Zmax-box.Zmin),
		}
	}
	return pts
}

// GenerateRandomRadicalPoints is GenerateRandomPoints plus a weight
// (radius) drawn uniformly from [rmin, rmax] for each point, ready for
// a radical (power) diagram's PutRadical.
func GenerateRandomRadicalPoints(cnt int, box voro.Box, rmin, rmax float64, seed int64) []Seed {
	pts := GenerateRandomPoints(cnt, box, seed)
	//nolint:gosec
	random := rand.New(rand.NewSource(seed + 1))
	for i := range pts {
		pts[i].R = rmin + random.Float64()*(rmax-rmin)
	}
	return pts
}

// GenerateLatticePoints lays cnt^3 seeds on a regular cubic lattice
// spanning box, one seed per box.Diagonal()/cnt cell; useful for
// tests that need a tessellation with a known, exact answer (every
// cell should come out congruent).
func GenerateLatticePoints(cnt int, box voro.Box) []Seed {
	if cnt <= 0 {
		return nil
	}
	dx := (box.Xmax - box.Xmin) / float64(cnt)
	dy := (box.Ymax - box.Ymin) / float64(cnt)
	dz := (box.Zmax - box.Zmin) / float64(cnt)
	pts := make([]Seed, 0, cnt*cnt*cnt)
	id := 0
	for i := 0; i < cnt; i++ {
		for j := 0; j < cnt; j++ {
			for k := 0; k < cnt; k++ {
				pts = append(pts, Seed{
					ID: id,
					X:  box.Xmin + (float64(i)+0.5)*dx,
					Y:  box.Ymin + (float64(j)+0.5)*dy,
					Z:  box.Zmin + (float64(k)+0.5)*dz,
				})
				id++
			}
		}
	}
	return pts
}

// FileInto puts every seed into c, calling PutRadical for all of them
// when radical is set and Put otherwise. It stops at the first error.
func FileInto(c *voro.Container, seeds []Seed, radical bool) error {
	for _, s := range seeds {
		var err error
		if radical {
			err = c.PutRadical(s.ID, s.X, s.Y, s.Z, s.R)
		} else {
			err = c.Put(s.ID, s.X, s.Y, s.Z)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
