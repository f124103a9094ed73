// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voroio

import (
	"fmt"
	"io"
	"sort"

	"github.com/2dChan/voro"
)

// WriteFacets writes res's faces, one per line, as its seed id
// followed by the face's vertex indices.
func WriteFacets(w io.Writer, res *voro.CellResult) error {
	for _, f := range res.Faces {
		if _, err := fmt.Fprintf(w, "%d", res.SeedID); err != nil {
			return fmt.Errorf("voroio: writing facet: %w", err)
		}
		for _, v := range f {
			if _, err := fmt.Fprintf(w, " %d", v); err != nil {
				return fmt.Errorf("voroio: writing facet: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("voroio: writing facet: %w", err)
		}
	}
	return nil
}

// WriteFacetStatistics writes the aggregate face-size histogram over
// every cell in results, one "size count" line per size, ascending by
// size.
func WriteFacetStatistics(w io.Writer, results []*voro.CellResult) error {
	total := make(map[int]int)
	for _, res := range results {
		if res == nil {
			continue
		}
		for size, count := range res.FaceHistogram {
			total[size] += count
		}
	}
	sizes := make([]int, 0, len(total))
	for size := range total {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		if _, err := fmt.Fprintf(w, "%d %d\n", size, total[size]); err != nil {
			return fmt.Errorf("voroio: writing facet statistics: %w", err)
		}
	}
	return nil
}

// WriteNeighbors writes res's per-face neighbour seed id, aligned by
// index with res.Faces, one "faceIndex neighborID" line per face.
// Only meaningful for a CellResult produced with WithNeighborTracking;
// an untracked result has a nil NeighborIDs and produces no output.
func WriteNeighbors(w io.Writer, res *voro.CellResult) error {
	for i, nb := range res.NeighborIDs {
		if _, err := fmt.Fprintf(w, "%d %d\n", i, nb); err != nil {
			return fmt.Errorf("voroio: writing neighbor: %w", err)
		}
	}
	return nil
}
