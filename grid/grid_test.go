// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package grid

import (
	"errors"
	"testing"
)

func newTestGrid(periodic [3]bool) *Grid {
	return NewGrid(0, 10, 0, 10, 0, 10, 4, 4, 4, periodic, false)
}

func TestGrid_PutAndRetrieve(t *testing.T) {
	g := newTestGrid([3]bool{false, false, false})
	if err := g.Put(1, 1, 1, 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := g.Put(2, 9, 9, 9); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var total int
	for _, bc := range g.RegionCount() {
		total += bc.Count
	}
	if total != 2 {
		t.Errorf("RegionCount total = %d, want 2", total)
	}

	found := map[int]bool{}
	for b := range g.ID {
		for q := range g.ID[b] {
			id, x, y, z, _ := g.Particle(b, q)
			found[id] = true
			if id == 1 && (x != 1 || y != 1 || z != 1) {
				t.Errorf("particle 1 position = (%v,%v,%v), want (1,1,1)", x, y, z)
			}
		}
	}
	if !found[1] || !found[2] {
		t.Errorf("found = %v, want both 1 and 2 present", found)
	}
}

func TestGrid_Put_RejectsOutOfDomain(t *testing.T) {
	g := newTestGrid([3]bool{false, false, false})
	err := g.Put(1, -5, 5, 5)
	if !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("Put out-of-domain: err = %v, want ErrOutOfDomain", err)
	}
}

func TestGrid_Put_WrapsOnPeriodicAxis(t *testing.T) {
	g := newTestGrid([3]bool{true, false, false})
	if err := g.Put(1, 13, 5, 5); err != nil {
		t.Fatalf("Put: %v", err)
	}
	found := false
	for b := range g.ID {
		for q := range g.ID[b] {
			id, x, _, _, _ := g.Particle(b, q)
			if id == 1 {
				found = true
				if x < g.Ax || x >= g.Bx {
					t.Errorf("wrapped x = %v, want inside [%v, %v)", x, g.Ax, g.Bx)
				}
			}
		}
	}
	if !found {
		t.Fatal("particle 1 not filed into any block")
	}
}

func TestGrid_PutRadical_TracksMaxWeight(t *testing.T) {
	g := NewGrid(0, 10, 0, 10, 0, 10, 2, 2, 2, [3]bool{false, false, false}, true)
	if err := g.PutRadical(1, 1, 1, 1, 0.5); err != nil {
		t.Fatalf("PutRadical: %v", err)
	}
	if err := g.PutRadical(2, 2, 2, 2, 2.5); err != nil {
		t.Fatalf("PutRadical: %v", err)
	}
	if err := g.PutRadical(3, 3, 3, 3, 1.0); err != nil {
		t.Fatalf("PutRadical: %v", err)
	}
	if got, want := g.MaxWeight(), 2.5; got != want {
		t.Errorf("MaxWeight() = %v, want %v", got, want)
	}
}

func TestGrid_Clear_ResetsCountsAndWeight(t *testing.T) {
	g := NewGrid(0, 10, 0, 10, 0, 10, 2, 2, 2, [3]bool{false, false, false}, true)
	if err := g.PutRadical(1, 1, 1, 1, 5); err != nil {
		t.Fatalf("PutRadical: %v", err)
	}
	g.Clear()
	if got := g.MaxWeight(); got != 0 {
		t.Errorf("MaxWeight() after Clear = %v, want 0", got)
	}
	for _, bc := range g.RegionCount() {
		if bc.Count != 0 {
			t.Fatalf("block %d has count %d after Clear, want 0", bc.Block, bc.Count)
		}
	}
}

func TestIndex_IsInjectiveOverBlockRange(t *testing.T) {
	nx, ny, nz := 3, 4, 5
	seen := make(map[int]bool)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := Index(i, j, k, nx, ny)
				if seen[idx] {
					t.Fatalf("Index(%d,%d,%d) = %d collides with an earlier block", i, j, k, idx)
				}
				seen[idx] = true
			}
		}
	}
	if len(seen) != nx*ny*nz {
		t.Errorf("saw %d distinct indices, want %d", len(seen), nx*ny*nz)
	}
}
