// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voroio

import (
	"strings"
	"testing"

	"github.com/2dChan/voro"
)

func TestWriteFacets_OneLinePerFace(t *testing.T) {
	var buf strings.Builder
	res := unitCubeResult()
	if err := WriteFacets(&buf, res); err != nil {
		t.Fatalf("WriteFacets: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), len(res.Faces); got != want {
		t.Fatalf("line count = %d, want %d", got, want)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "3 ") {
			t.Errorf("line %q does not start with seed id 3", line)
		}
	}
}

func TestWriteFacetStatistics_AggregatesAcrossCells(t *testing.T) {
	var buf strings.Builder
	results := []*voro.CellResult{unitCubeResult(), unitCubeResult(), nil}
	if err := WriteFacetStatistics(&buf, results); err != nil {
		t.Fatalf("WriteFacetStatistics: %v", err)
	}
	if got, want := strings.TrimSpace(buf.String()), "4 12"; got != want {
		t.Errorf("statistics = %q, want %q (two cubes, 6 quad faces each)", got, want)
	}
}

func TestWriteNeighbors_AlignsWithFaceIndex(t *testing.T) {
	var buf strings.Builder
	res := unitCubeResult()
	if err := WriteNeighbors(&buf, res); err != nil {
		t.Fatalf("WriteNeighbors: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), len(res.NeighborIDs); got != want {
		t.Fatalf("line count = %d, want %d", got, want)
	}
	if got, want := lines[0], "0 7"; got != want {
		t.Errorf("first neighbor line = %q, want %q", got, want)
	}
}

func TestWriteNeighbors_EmptyWhenUntracked(t *testing.T) {
	var buf strings.Builder
	res := unitCubeResult()
	res.NeighborIDs = nil
	if err := WriteNeighbors(&buf, res); err != nil {
		t.Fatalf("WriteNeighbors: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an untracked cell, got %q", buf.String())
	}
}
