package voro

import "fmt"

// Cell is a bounds-checked view over a computed CellResult, mirroring
// the teacher's index + back-pointer view struct over a Diagram.
type Cell struct {
	r *CellResult
}

// View wraps res in a bounds-checked accessor view.
func (res *CellResult) View() Cell {
	return Cell{r: res}
}

// NumVertices returns the number of vertices in the cell.
func (c Cell) NumVertices() int {
	return len(c.r.Vertices)
}

// Vertex returns the vertex at the specified index, in the seed's
// local frame. It returns an error if the index is out of range.
func (c Cell) Vertex(i int) ([3]float64, error) {
	if i < 0 || i >= len(c.r.Vertices) {
		return [3]float64{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, len(c.r.Vertices))
	}
	return c.r.Vertices[i], nil
}

// NumFaces returns the number of faces in the cell.
func (c Cell) NumFaces() int {
	return len(c.r.Faces)
}

// Face returns the vertex indices bounding the face at the specified
// index, in cyclic order. It returns an error if the index is out of
// range.
func (c Cell) Face(i int) ([]int, error) {
	if i < 0 || i >= len(c.r.Faces) {
		return nil, fmt.Errorf("Face: index %d out of range [0 %d)", i, len(c.r.Faces))
	}
	return c.r.Faces[i], nil
}

// NumNeighbors returns the number of tracked neighbours; it is zero
// unless the container was built with WithNeighborTracking.
func (c Cell) NumNeighbors() int {
	return len(c.r.NeighborIDs)
}

// Neighbor returns the seed id across the face at the specified
// index. It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (int, error) {
	if i < 0 || i >= len(c.r.NeighborIDs) {
		return 0, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, len(c.r.NeighborIDs))
	}
	return c.r.NeighborIDs[i], nil
}
