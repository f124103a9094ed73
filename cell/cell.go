package cell

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// Cell is a convex polyhedron, held as a packed vertex-position array
// plus a per-vertex cyclic neighbour list with inline back-indices —
// a half-edge representation without pointers. It starts as a box or
// octahedron (InitBox / InitOctahedron) and is narrowed by successive
// calls to Plane.
type Cell struct {
	// P is the current vertex count; only Pts[:3*P], Nu[:P] and
	// Ed[:P] are live.
	P int
	// Pts holds packed (x, y, z) vertex coordinates.
	Pts []float64
	// Nu holds the order (degree) of each vertex.
	Nu []int
	// Ed[i] has length 2*Nu[i]+1: the Nu[i] neighbour indices in
	// cyclic order, followed by their back-indices, followed by an
	// unused scratch slot kept for layout symmetry with the source
	// material's edge table.
	Ed [][]int

	classifier Classifier

	// MaxVertices bounds cell growth; a cut that would exceed it
	// fails with ErrVertexOverflow. Defaults to MaxVertices (the
	// package constant) via New.
	MaxVertices int
}

// New returns a reset cell ready for InitBox or InitOctahedron.
func New() *Cell {
	return &Cell{MaxVertices: MaxVertices}
}

// SetTolerance overrides the on-plane band Plane's classifier uses;
// see Classifier.SetTolerance.
func (c *Cell) SetTolerance(tol float64) {
	c.classifier.SetTolerance(tol)
}

// InitBox resets the cell to an axis-aligned box.
func (c *Cell) InitBox(xmin, xmax, ymin, ymax, zmin, zmax float64) {
	pts := [][3]float64{
		{xmin, ymin, zmin}, {xmax, ymin, zmin}, {xmax, ymax, zmin}, {xmin, ymax, zmin},
		{xmin, ymin, zmax}, {xmax, ymin, zmax}, {xmax, ymax, zmax}, {xmin, ymax, zmax},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // z = zmin
		{4, 5, 6, 7}, // z = zmax
		{0, 1, 5, 4}, // y = ymin
		{3, 7, 6, 2}, // y = ymax
		{0, 4, 7, 3}, // x = xmin
		{1, 2, 6, 5}, // x = xmax
	}
	c.assign(pts, faces)
}

// InitOctahedron resets the cell to a regular octahedron with
// vertices at distance l along each axis.
func (c *Cell) InitOctahedron(l float64) {
	pts := [][3]float64{
		{l, 0, 0}, {0, l, 0}, {-l, 0, 0}, {0, -l, 0}, {0, 0, l}, {0, 0, -l},
	}
	faces := [][]int{
		{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
		{1, 0, 5}, {2, 1, 5}, {3, 2, 5}, {0, 3, 5},
	}
	c.assign(pts, faces)
}

// assign rebuilds the cell's arrays from a fresh vertex/face
// description, deriving each vertex's cyclic neighbour order and its
// back-indices from the face list.
func (c *Cell) assign(pts [][3]float64, faces [][]int) {
	n := len(pts)
	c.P = n
	c.Pts = make([]float64, 3*n)
	for i, p := range pts {
		c.Pts[3*i], c.Pts[3*i+1], c.Pts[3*i+2] = p[0], p[1], p[2]
	}
	order, ed := buildTopology(n, faces)
	c.Nu = make([]int, n)
	for v := range order {
		c.Nu[v] = len(order[v])
	}
	c.Ed = ed
}

// buildTopology derives, for every vertex 0..n-1, its cyclic
// neighbour order from faces, then materialises the Ed-style edge
// records (neighbours followed by back-indices followed by an unused
// scratch slot).
func buildTopology(n int, faces [][]int) (order [][]int, ed [][]int) {
	order = make([][]int, n)
	for v := 0; v < n; v++ {
		order[v] = cyclicOrderFromFaces(v, faces)
	}
	posOf := make([]map[int]int, n)
	for v := 0; v < n; v++ {
		posOf[v] = make(map[int]int, len(order[v]))
		for idx, nb := range order[v] {
			posOf[v][nb] = idx
		}
	}
	ed = make([][]int, n)
	for v := 0; v < n; v++ {
		k := len(order[v])
		rec := make([]int, 2*k+1)
		for idx, nb := range order[v] {
			rec[idx] = nb
			rec[k+idx] = posOf[nb][v]
		}
		rec[2*k] = -1
		ed[v] = rec
	}
	return order, ed
}

// cyclicOrderFromFaces derives vertex v's cyclic neighbour order from
// a face list: for every face containing v, the vertex immediately
// before v in that face's cyclic list is mapped to the vertex
// immediately after it. Chaining that predecessor-to-successor map
// starting anywhere recovers the rotational order of edges around v,
// consistent with the faces' own winding.
func cyclicOrderFromFaces(v int, faces [][]int) []int {
	predToSucc := make(map[int]int)
	for _, f := range faces {
		n := len(f)
		for idx, u := range f {
			if u != v {
				continue
			}
			pred := f[(idx-1+n)%n]
			succ := f[(idx+1)%n]
			predToSucc[pred] = succ
		}
	}
	if len(predToSucc) == 0 {
		return nil
	}
	var start int
	for k := range predToSucc {
		start = k
		break
	}
	order := []int{start}
	cur := start
	for {
		nxt, ok := predToSucc[cur]
		if !ok || nxt == start {
			break
		}
		order = append(order, nxt)
		cur = nxt
		if len(order) > len(predToSucc) {
			break
		}
	}
	return order
}

// FaceVertexLists walks every face by repeatedly following "move to
// the neighbour, then take the entry after its back-index" — the
// face-walk identity that replaces explicit face objects.
func (c *Cell) FaceVertexLists() [][]int {
	type halfEdge struct{ v, m int }
	visited := make(map[halfEdge]bool)
	var faces [][]int
	for i := 0; i < c.P; i++ {
		for m := 0; m < c.Nu[i]; m++ {
			start := halfEdge{i, m}
			if visited[start] {
				continue
			}
			var face []int
			cv, cm := i, m
			for {
				visited[halfEdge{cv, cm}] = true
				face = append(face, cv)
				j := c.Ed[cv][cm]
				b := c.Ed[cv][c.Nu[cv]+cm]
				nm := (b + 1) % c.Nu[j]
				cv, cm = j, nm
				if cv == i && cm == m {
					break
				}
			}
			faces = append(faces, face)
		}
	}
	return faces
}

// FaceSizeHistogram maps face size k >= 3 to the number of faces of
// that size.
func (c *Cell) FaceSizeHistogram() map[int]int {
	hist := make(map[int]int)
	for _, f := range c.FaceVertexLists() {
		hist[len(f)]++
	}
	return hist
}

// Volume sums signed tetrahedra fanned from vertex 0 across every
// triangulated face; the divergence theorem makes the choice of
// anchor arbitrary.
func (c *Cell) Volume() float64 {
	if c.P == 0 {
		return 0
	}
	faces := c.FaceVertexLists()
	ax, ay, az := c.Pts[0], c.Pts[1], c.Pts[2]
	var vol float64
	for _, f := range faces {
		n := len(f)
		if n < 3 {
			continue
		}
		bx := c.Pts[3*f[0]] - ax
		by := c.Pts[3*f[0]+1] - ay
		bz := c.Pts[3*f[0]+2] - az
		for i := 1; i < n-1; i++ {
			j, k := f[i], f[i+1]
			cx := c.Pts[3*j] - ax
			cy := c.Pts[3*j+1] - ay
			cz := c.Pts[3*j+2] - az
			dx := c.Pts[3*k] - ax
			dy := c.Pts[3*k+1] - ay
			dz := c.Pts[3*k+2] - az
			crossx := cy*dz - cz*dy
			crossy := cz*dx - cx*dz
			crossz := cx*dy - cy*dx
			vol += bx*crossx + by*crossy + bz*crossz
		}
	}
	return math.Abs(vol) / 6
}

// Vertices returns the cell's current vertex positions, one triple
// per vertex, in the same local frame Plane's arguments are given in
// (the seed at the origin).
func (c *Cell) Vertices() [][3]float64 {
	out := make([][3]float64, c.P)
	for i := range out {
		out[i] = [3]float64{c.Pts[3*i], c.Pts[3*i+1], c.Pts[3*i+2]}
	}
	return out
}

// MaxRadiusSq returns the largest squared distance of any vertex from
// the cell's local origin.
func (c *Cell) MaxRadiusSq() float64 {
	var m float64
	for i := 0; i < c.P; i++ {
		x, y, z := c.Pts[3*i], c.Pts[3*i+1], c.Pts[3*i+2]
		if r := x*x + y*y + z*z; r > m {
			m = r
		}
	}
	return m
}

// CheckRelations re-verifies that every half-edge has a matching
// inverse, then cross-checks the result against a relation table
// rebuilt from scratch by rebuildRelations. It is a diagnostic; a
// well-formed cell always passes.
func (c *Cell) CheckRelations() error {
	for i := 0; i < c.P; i++ {
		k := c.Nu[i]
		for m := 0; m < k; m++ {
			j := c.Ed[i][m]
			b := c.Ed[i][k+m]
			if j < 0 || j >= c.P || b < 0 || b >= c.Nu[j] || c.Ed[j][b] != i {
				return fmt.Errorf("%w: vertex %d edge %d -> %d back-index %d", ErrInvariantViolation, i, m, j, b)
			}
			if c.Ed[j][c.Nu[j]+b] != m {
				return fmt.Errorf("%w: vertex %d edge %d -> %d back-index does not round-trip", ErrInvariantViolation, i, m, j)
			}
		}
	}
	rebuilt := c.rebuildRelations()
	for i := 0; i < c.P; i++ {
		for m := 0; m < c.Nu[i]; m++ {
			if rebuilt[i][m] != c.Ed[i][c.Nu[i]+m] {
				return fmt.Errorf("%w: vertex %d back-index %d disagrees with a from-scratch rebuild (got %d, want %d)",
					ErrInvariantViolation, i, m, c.Ed[i][c.Nu[i]+m], rebuilt[i][m])
			}
		}
	}
	return nil
}

// rebuildRelations recomputes every vertex's back-index array purely
// from Ed's neighbour lists, independent of whatever back-indices are
// already stored, giving CheckRelations something to duplicate-check
// against rather than trusting the stored table's own bookkeeping.
func (c *Cell) rebuildRelations() [][]int {
	rebuilt := make([][]int, c.P)
	for i := 0; i < c.P; i++ {
		rebuilt[i] = make([]int, c.Nu[i])
		for m := 0; m < c.Nu[i]; m++ {
			j := c.Ed[i][m]
			rebuilt[i][m] = -1
			if j < 0 || j >= c.P {
				continue
			}
			for b := 0; b < c.Nu[j]; b++ {
				if c.Ed[j][b] == i {
					rebuilt[i][m] = b
					break
				}
			}
		}
	}
	return rebuilt
}

// Perturb adds noise of amplitude r, uniformly distributed on
// [-r, r] per axis, to every vertex. Diagnostic only; it does not
// preserve convexity or repair invariants.
func (c *Cell) Perturb(r float64, rnd *rand.Rand) {
	for i := 0; i < c.P; i++ {
		d := r3.Vector{
			X: rnd.Float64()*2 - 1,
			Y: rnd.Float64()*2 - 1,
			Z: rnd.Float64()*2 - 1,
		}
		c.Pts[3*i] += d.X * r
		c.Pts[3*i+1] += d.Y * r
		c.Pts[3*i+2] += d.Z * r
	}
}
