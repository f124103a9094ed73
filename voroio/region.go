// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voroio

import (
	"fmt"
	"io"

	"github.com/2dChan/voro/grid"
)

// WriteRegionCount writes one "i j k count" line per grid block, the
// per-block occupancy census used to sanity-check that a grid's block
// size is neither too coarse (a handful of huge, crowded blocks) nor
// too fine (mostly-empty blocks) for the point set it holds.
func WriteRegionCount(w io.Writer, counts []grid.BlockCount) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%d %d %d %d\n", c.I, c.J, c.K, c.Count); err != nil {
			return fmt.Errorf("voroio: writing region count: %w", err)
		}
	}
	return nil
}
