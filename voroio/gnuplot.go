// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voroio serializes computed cells to the plotting and mesh
// formats the reference voro++ tool ships: gnuplot line segments,
// POV-Ray primitives and meshes, per-face vertex/neighbour listings,
// and grid occupancy counts.
package voroio

import (
	"fmt"
	"io"

	"github.com/2dChan/voro"
)

// edgeKey identifies an undirected edge by its two endpoint indices,
// used to write each edge of a cell exactly once.
type edgeKey struct{ a, b int }

func normalizeEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// WriteGnuplot writes res's edges as gnuplot line segments: each edge
// is two "x y z" coordinate lines (translated into container
// coordinates via res.Seed) followed by a blank line, so gnuplot's
// "plot ... with lines" draws every edge as a disconnected segment
// rather than joining unrelated edges together.
func WriteGnuplot(w io.Writer, res *voro.CellResult) error {
	seen := make(map[edgeKey]bool)
	for _, f := range res.Faces {
		n := len(f)
		for i := 0; i < n; i++ {
			a, b := f[i], f[(i+1)%n]
			key := normalizeEdge(a, b)
			if seen[key] {
				continue
			}
			seen[key] = true
			pa, pb := res.Vertices[a], res.Vertices[b]
			if _, err := fmt.Fprintf(w, "%g %g %g\n%g %g %g\n\n",
				res.Seed[0]+pa[0], res.Seed[1]+pa[1], res.Seed[2]+pa[2],
				res.Seed[0]+pb[0], res.Seed[1]+pb[1], res.Seed[2]+pb[2]); err != nil {
				return fmt.Errorf("voroio: writing gnuplot edge: %w", err)
			}
		}
	}
	return nil
}

// WriteGnuplotAll writes every cell in results in sequence, separated
// by a second blank line so multiple cells remain visually distinct
// under gnuplot's default line style.
func WriteGnuplotAll(w io.Writer, results []*voro.CellResult) error {
	for _, res := range results {
		if res == nil {
			continue
		}
		if err := WriteGnuplot(w, res); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("voroio: writing gnuplot separator: %w", err)
		}
	}
	return nil
}
