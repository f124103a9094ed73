// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voroio

import (
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"

	"github.com/2dChan/voro"
)

// VertexRadius and EdgeRadius size the sphere/cylinder primitives
// WritePOV emits; both are in the container's own length units.
const (
	VertexRadius = 0.02
	EdgeRadius   = 0.01
)

// WritePOV writes res as POV-Ray primitives: one sphere per vertex,
// one cylinder per edge, in container coordinates.
func WritePOV(w io.Writer, res *voro.CellResult) error {
	for _, v := range res.Vertices {
		if _, err := fmt.Fprintf(w, "sphere{<%g,%g,%g>,%g}\n",
			res.Seed[0]+v[0], res.Seed[1]+v[1], res.Seed[2]+v[2], VertexRadius); err != nil {
			return fmt.Errorf("voroio: writing pov vertex: %w", err)
		}
	}
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
			if _, err := fmt.Fprintf(w, "cylinder{<%g,%g,%g>,<%g,%g,%g>,%g}\n",
				res.Seed[0]+pa[0], res.Seed[1]+pa[1], res.Seed[2]+pa[2],
				res.Seed[0]+pb[0], res.Seed[1]+pb[1], res.Seed[2]+pb[2], EdgeRadius); err != nil {
				return fmt.Errorf("voroio: writing pov edge: %w", err)
			}
		}
	}
	return nil
}

// WritePOVMesh writes res as a single POV-Ray mesh2 block: every face
// is triangulated by running its (already convex, planar) vertex set
// through quickhull-go and taking the returned triangle fan, exactly
// as the teacher lifts a point set to a convex hull for triangulation
// elsewhere in this module's ancestry.
func WritePOVMesh(w io.Writer, res *voro.CellResult) error {
	verts := make([]r3.Vector, len(res.Vertices))
	for i, v := range res.Vertices {
		verts[i] = r3.Vector{X: res.Seed[0] + v[0], Y: res.Seed[1] + v[1], Z: res.Seed[2] + v[2]}
	}

	if _, err := fmt.Fprintf(w, "mesh2 {\n  vertex_vectors { %d,\n", len(verts)); err != nil {
		return fmt.Errorf("voroio: writing mesh header: %w", err)
	}
	for _, v := range verts {
		if _, err := fmt.Fprintf(w, "    <%g,%g,%g>,\n", v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("voroio: writing mesh vertex: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, "  }"); err != nil {
		return fmt.Errorf("voroio: closing vertex_vectors: %w", err)
	}

	var triangles [][3]int
	for _, f := range res.Faces {
		if len(f) < 3 {
			continue
		}
		facePts := make([]r3.Vector, len(f))
		for i, idx := range f {
			facePts[i] = verts[idx]
		}
		qh := new(quickhull.QuickHull)
		ch := qh.ConvexHull(facePts, true, true, 1e-9)
		for i := 0; i+2 < len(ch.Indices); i += 3 {
			triangles = append(triangles, [3]int{
				f[ch.Indices[i]], f[ch.Indices[i+1]], f[ch.Indices[i+2]],
			})
		}
	}

	if _, err := fmt.Fprintf(w, "  face_indices { %d,\n", len(triangles)); err != nil {
		return fmt.Errorf("voroio: writing face_indices header: %w", err)
	}
	for _, t := range triangles {
		if _, err := fmt.Fprintf(w, "    <%d,%d,%d>,\n", t[0], t[1], t[2]); err != nil {
			return fmt.Errorf("voroio: writing mesh face: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, "  }\n}"); err != nil {
		return fmt.Errorf("voroio: closing mesh2: %w", err)
	}
	return nil
}
