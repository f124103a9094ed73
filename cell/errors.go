package cell

import "errors"

// ErrVertexOverflow is returned when a plane cut would grow the cell
// past MaxVertices.
var ErrVertexOverflow = errors.New("cell: vertex count exceeds maximum")

// ErrInvariantViolation is returned by CheckRelations when a paired
// half-edge's back-index does not resolve to the expected vertex.
var ErrInvariantViolation = errors.New("cell: half-edge back-index mismatch")

// MaxVertices bounds the number of vertices a single cell may hold.
// Exceeding it aborts the cut with ErrVertexOverflow.
const MaxVertices = 1 << 16
