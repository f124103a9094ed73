package cell

// NeighborCell extends Cell so every directed edge carries the
// identifier of the seed whose bisector created the face it borders.
// Faces produced by InitBox/InitOctahedron (the bounding box, not a
// bisector) carry the sentinel tag -1.
type NeighborCell struct {
	*Cell
	// Ne is shaped like Ed's neighbour half: Ne[v][m] is the seed id
	// tagging the face immediately associated with the directed edge
	// v -> Ed[v][m].
	Ne [][]int
}

// NewNeighborCell returns a reset neighbour-tracked cell.
func NewNeighborCell() *NeighborCell {
	return &NeighborCell{Cell: New()}
}

// InitBox resets the cell to a box; all faces are untagged (-1).
func (nc *NeighborCell) InitBox(xmin, xmax, ymin, ymax, zmin, zmax float64) {
	nc.Cell.InitBox(xmin, xmax, ymin, ymax, zmin, zmax)
	nc.resetTags()
}

// InitOctahedron resets the cell to an octahedron; all faces are
// untagged (-1).
func (nc *NeighborCell) InitOctahedron(l float64) {
	nc.Cell.InitOctahedron(l)
	nc.resetTags()
}

func (nc *NeighborCell) resetTags() {
	nc.Ne = make([][]int, nc.P)
	for v := 0; v < nc.P; v++ {
		row := make([]int, nc.Nu[v])
		for i := range row {
			row[i] = -1
		}
		nc.Ne[v] = row
	}
}

// edgeIndex returns the position of neighbour j in vertex i's
// adjacency list, or -1 if i and j are not adjacent.
func edgeIndex(ed [][]int, nu []int, i, j int) int {
	for m := 0; m < nu[i]; m++ {
		if ed[i][m] == j {
			return m
		}
	}
	return -1
}

// Plane forwards to NPlane with the untracked sentinel tag -1,
// letting a NeighborCell also satisfy plain plane-cutting use.
func (nc *NeighborCell) Plane(x, y, z, rsq float64) (bool, error) {
	return nc.NPlane(x, y, z, rsq, -1)
}

// NPlane cuts the cell exactly as Plane does, additionally tagging
// every edge of the newly created face with pID; edges of faces that
// survive the cut keep their existing tag.
func (nc *NeighborCell) NPlane(x, y, z, rsq float64, pID int) (bool, error) {
	faces := nc.Cell.FaceVertexLists()
	faceTags := make([]int, len(faces))
	for fi, f := range faces {
		m := edgeIndex(nc.Ed, nc.Nu, f[0], f[1])
		faceTags[fi] = nc.Ne[f[0]][m]
	}

	res, ok, err := cutFaces(nc.Pts, nc.P, faces, faceTags, &nc.classifier, x, y, z, rsq, pID, nc.MaxVertices)
	if err != nil {
		return false, err
	}
	if !ok {
		nc.P = 0
		nc.Pts = nc.Pts[:0]
		nc.Nu = nc.Nu[:0]
		nc.Ed = nc.Ed[:0]
		nc.Ne = nc.Ne[:0]
		return false, nil
	}
	if res == nil {
		return true, nil
	}
	nc.assignTracked(res.pts, res.faces, res.tags)
	return true, nil
}

func (nc *NeighborCell) assignTracked(pts [][3]float64, faces [][]int, tags []int) {
	n := len(pts)
	nc.P = n
	nc.Pts = make([]float64, 3*n)
	for i, p := range pts {
		nc.Pts[3*i], nc.Pts[3*i+1], nc.Pts[3*i+2] = p[0], p[1], p[2]
	}
	order, ed := buildTopology(n, faces)
	nc.Nu = make([]int, n)
	for v := range order {
		nc.Nu[v] = len(order[v])
	}
	nc.Ed = ed

	nc.Ne = make([][]int, n)
	for v := 0; v < n; v++ {
		nc.Ne[v] = make([]int, len(order[v]))
	}
	for fi, f := range faces {
		tag := tags[fi]
		n2 := len(f)
		for i := 0; i < n2; i++ {
			a, b := f[i], f[(i+1)%n2]
			m := edgeIndex(nc.Ed, nc.Nu, a, b)
			nc.Ne[a][m] = tag
		}
	}
}

// LabelFacets returns, per face (in the same order as
// FaceVertexLists), the single seed tag shared by all of that face's
// edges.
func (nc *NeighborCell) LabelFacets() []int {
	faces := nc.Cell.FaceVertexLists()
	labels := make([]int, len(faces))
	for fi, f := range faces {
		m := edgeIndex(nc.Ed, nc.Nu, f[0], f[1])
		labels[fi] = nc.Ne[f[0]][m]
	}
	return labels
}
