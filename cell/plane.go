package cell

import (
	"fmt"
)

// cutResult is the outcome of clipping a face list against a
// half-space: the surviving/interpolated vertices, the resulting
// faces (old faces trimmed plus, when the cut is non-trivial, one new
// cap face), and — when the caller tracks per-face provenance — the
// tag carried by each output face.
type cutResult struct {
	pts   [][3]float64
	faces [][]int
	tags  []int
}

// cutFaces clips a convex polyhedron, described by its packed vertex
// positions and face list, against the half-space
// {q : x*qx + y*qy + z*qz <= rsq}.
//
// It returns (nil, true, nil) when the plane lies entirely outside
// the cell (no change), (nil, false, nil) when every vertex is
// outside (the cell becomes empty), and otherwise the clipped
// geometry with ok=true.
func cutFaces(pts []float64, p int, faces [][]int, faceTags []int, cl *Classifier, x, y, z, rsq float64, newTag, maxVertices int) (*cutResult, bool, error) {
	if p == 0 {
		return nil, true, nil
	}
	cl.Prime(x, y, z, rsq)

	verdict := make([]Verdict, p)
	dist := make([]float64, p)
	anyOutside, anyKept := false, false
	for v := 0; v < p; v++ {
		vd, d := cl.Test(pts, v)
		verdict[v] = vd
		dist[v] = d
		if vd == Outside {
			anyOutside = true
		} else {
			anyKept = true
		}
	}
	if !anyOutside {
		return nil, true, nil
	}
	if !anyKept {
		return nil, false, nil
	}

	onPlane := func(v int) bool { return verdict[v] == OnPlane }
	kept := func(v int) bool { return verdict[v] != Outside }

	// exposed marks an on-plane vertex that borders a strictly
	// outside vertex; only such vertices are reused as contour
	// vertices of the new cap face. An on-plane vertex surrounded
	// entirely by kept vertices is left untouched.
	exposed := make([]bool, p)
	for v := 0; v < p; v++ {
		if !onPlane(v) {
			continue
		}
		for _, f := range faces {
			n := len(f)
			for i, u := range f {
				if u != v {
					continue
				}
				nb := f[(i+1)%n]
				pb := f[(i-1+n)%n]
				if verdict[nb] == Outside {
					exposed[v] = true
				}
				if verdict[pb] == Outside {
					exposed[v] = true
				}
			}
		}
	}

	var newPts [][3]float64
	keptID := make(map[int]int)
	getKeptID := func(old int) int {
		if id, ok := keptID[old]; ok {
			return id
		}
		id := len(newPts)
		keptID[old] = id
		newPts = append(newPts, [3]float64{pts[3*old], pts[3*old+1], pts[3*old+2]})
		return id
	}

	type pairKey struct{ a, b int }
	cutVertex := make(map[pairKey]int)
	getCutVertex := func(inside, outside int) int {
		key := pairKey{min(inside, outside), max(inside, outside)}
		if id, ok := cutVertex[key]; ok {
			return id
		}
		di, do := dist[inside], dist[outside]
		t := -di / (do - di)
		p0 := [3]float64{pts[3*inside], pts[3*inside+1], pts[3*inside+2]}
		p1 := [3]float64{pts[3*outside], pts[3*outside+1], pts[3*outside+2]}
		np := [3]float64{
			p0[0] + t*(p1[0]-p0[0]),
			p0[1] + t*(p1[1]-p0[1]),
			p0[2] + t*(p1[2]-p0[2]),
		}
		id := len(newPts)
		cutVertex[key] = id
		newPts = append(newPts, np)
		return id
	}

	type builtFace struct {
		verts   []int
		contour []bool
		tag     int
	}
	var built []builtFace
	for fi, f := range faces {
		n := len(f)
		var verts []int
		var contour []bool
		for i := 0; i < n; i++ {
			a, b := f[i], f[(i+1)%n]
			if kept(a) {
				verts = append(verts, getKeptID(a))
				contour = append(contour, onPlane(a) && exposed[a])
			}
			switch {
			case verdict[a] == Inside && verdict[b] == Outside:
				verts = append(verts, getCutVertex(a, b))
				contour = append(contour, true)
			case verdict[a] == Outside && verdict[b] == Inside:
				verts = append(verts, getCutVertex(b, a))
				contour = append(contour, true)
			}
		}
		if len(verts) < 3 {
			continue
		}
		tag := 0
		if faceTags != nil {
			tag = faceTags[fi]
		}
		built = append(built, builtFace{verts, contour, tag})
	}

	if maxVertices > 0 && len(newPts) > maxVertices {
		return nil, false, fmt.Errorf("%w: %d vertices exceeds limit %d", ErrVertexOverflow, len(newPts), maxVertices)
	}

	capAdj := make(map[int][]int)
	addEdge := func(a, b int) {
		capAdj[a] = append(capAdj[a], b)
		capAdj[b] = append(capAdj[b], a)
	}
	for _, bf := range built {
		n := len(bf.verts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if bf.contour[i] && bf.contour[j] {
				addEdge(bf.verts[i], bf.verts[j])
			}
		}
	}
	ring := buildRing(capAdj)

	var outFaces [][]int
	var outTags []int
	for _, bf := range built {
		outFaces = append(outFaces, bf.verts)
		if faceTags != nil {
			outTags = append(outTags, bf.tag)
		}
	}
	if len(ring) >= 3 {
		if orientRingOutward(newPts, ring, x, y, z) {
			reverseInts(ring)
		}
		outFaces = append(outFaces, ring)
		if faceTags != nil {
			outTags = append(outTags, newTag)
		}
	}

	outFaces = collapseLowOrder(outFaces)
	if faceTags != nil {
		// collapseLowOrder never drops a whole face once it exists
		// with >=3 vertices except by vertex removal, which does not
		// change face identity/order, so tags stay aligned by index
		// as long as no face was entirely eliminated. Guard for that
		// rare degenerate case by truncating extra tags.
		if len(outTags) > len(outFaces) {
			outTags = outTags[:len(outFaces)]
		}
	}

	return &cutResult{pts: newPts, faces: outFaces, tags: outTags}, true, nil
}

// buildRing walks a degree-2 adjacency graph (the edges of the newly
// formed cap face) into a single ordered polygon.
func buildRing(adj map[int][]int) []int {
	if len(adj) == 0 {
		return nil
	}
	var start int
	for k := range adj {
		start = k
		break
	}
	ring := []int{start}
	prev, cur := -1, start
	for {
		nbrs := adj[cur]
		next := -1
		for _, nb := range nbrs {
			if nb != prev {
				next = nb
				break
			}
		}
		if next == -1 && len(nbrs) > 0 {
			next = nbrs[0]
		}
		if next == -1 || next == start {
			break
		}
		ring = append(ring, next)
		prev, cur = cur, next
		if len(ring) > len(adj) {
			break
		}
	}
	return ring
}

// orientRingOutward reports whether ring's current winding needs
// reversing so its outward normal points the same way as the plane's
// outside direction (x, y, z).
func orientRingOutward(pts [][3]float64, ring []int, x, y, z float64) bool {
	if len(ring) < 3 {
		return false
	}
	p0, p1, p2 := pts[ring[0]], pts[ring[1]], pts[ring[2]]
	ux, uy, uz := p1[0]-p0[0], p1[1]-p0[1], p1[2]-p0[2]
	vx, vy, vz := p2[0]-p0[0], p2[1]-p0[1], p2[2]-p0[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	return nx*x+ny*y+nz*z < 0
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// collapseLowOrder removes any vertex whose derived order falls below
// three, splicing its incident faces back together, and repeats to a
// fixed point. This unifies the source material's separate
// order-1/order-2 collapse routines into one generic pass, since both
// cases reduce to "delete the vertex from every face that names it".
func collapseLowOrder(faces [][]int) [][]int {
	for {
		present := make(map[int]bool)
		for _, f := range faces {
			for _, v := range f {
				present[v] = true
			}
		}
		bad := -1
		for v := range present {
			if len(cyclicOrderFromFaces(v, faces)) < 3 {
				bad = v
				break
			}
		}
		if bad == -1 {
			return faces
		}
		var next [][]int
		for _, f := range faces {
			nf := make([]int, 0, len(f))
			for _, v := range f {
				if v != bad {
					nf = append(nf, v)
				}
			}
			if len(nf) >= 3 {
				next = append(next, nf)
			}
		}
		faces = next
	}
}

// Plane intersects the cell with the half-space
// {q : x*qx + y*qy + z*qz <= rsq}. It returns false iff the cell
// becomes empty; the cell is left unchanged when the plane lies
// entirely outside it.
func (c *Cell) Plane(x, y, z, rsq float64) (bool, error) {
	res, ok, err := cutFaces(c.Pts, c.P, c.FaceVertexLists(), nil, &c.classifier, x, y, z, rsq, 0, c.MaxVertices)
	if err != nil {
		return false, err
	}
	if !ok {
		c.P = 0
		c.Pts = c.Pts[:0]
		c.Nu = c.Nu[:0]
		c.Ed = c.Ed[:0]
		return false, nil
	}
	if res == nil {
		return true, nil
	}
	c.assign(res.pts, res.faces)
	return true, nil
}
