// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voro wires the spatial grid and the per-cell polyhedron
// kernel into a top-level Voronoi/radical tessellation container.
package voro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"

	"github.com/2dChan/voro/cell"
	"github.com/2dChan/voro/grid"
)

// seedRecord is a container's own record of a particle, independent
// of which grid block currently files it (needed because ComputeCell
// looks a seed up by id, while the grid only enumerates by block).
type seedRecord struct {
	x, y, z, r float64
}

// Container computes Voronoi or radical cells for a set of seed
// points inside an axis-aligned box, using a Grid for neighbour search
// and a cell.Cell/cell.NeighborCell for the per-seed polyhedron.
type Container struct {
	Box      Box
	Periodic [3]bool

	grid  *grid.Grid
	opts  options
	seeds map[int]seedRecord
}

// NewContainer returns an empty container over bounds, subdivided
// into nx*ny*nz grid blocks.
func NewContainer(bounds Box, nx, ny, nz int, periodic [3]bool, opts ...Option) (*Container, error) {
	var o options
	for _, set := range opts {
		if err := set(&o); err != nil {
			return nil, fmt.Errorf("voro: %w", err)
		}
	}
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("voro: grid dimensions must be positive, got (%d, %d, %d)", nx, ny, nz)
	}
	g := grid.NewGrid(bounds.Xmin, bounds.Xmax, bounds.Ymin, bounds.Ymax, bounds.Zmin, bounds.Zmax,
		nx, ny, nz, periodic, o.radical)
	return &Container{
		Box:      bounds,
		Periodic: periodic,
		grid:     g,
		opts:     o,
		seeds:    make(map[int]seedRecord),
	}, nil
}

// Put files an unweighted seed. It fails on a radical container; use
// PutRadical there instead.
func (c *Container) Put(id int, x, y, z float64) error {
	if c.opts.radical {
		return fmt.Errorf("%w: container is radical, call PutRadical", ErrRadicalModeMismatch)
	}
	if err := c.checkDomain(x, y, z); err != nil {
		return err
	}
	if err := c.grid.Put(id, x, y, z); err != nil {
		return wrapGridError(err)
	}
	c.seeds[id] = seedRecord{x: x, y: y, z: z}
	return nil
}

// checkDomain rejects a coordinate outside the container's box before
// it ever reaches the grid, but only when no axis is periodic; with
// any periodic axis it checks nothing and leaves every axis to the
// grid, which wraps periodic axes and rejects the others.
func (c *Container) checkDomain(x, y, z float64) error {
	if c.Periodic[0] || c.Periodic[1] || c.Periodic[2] {
		return nil
	}
	if !c.Box.Contains(r3.Vector{X: x, Y: y, Z: z}) {
		return fmt.Errorf("voro: %w: %w: (%g, %g, %g) outside %+v", ErrOutOfDomain, grid.ErrOutOfDomain, x, y, z, c.Box)
	}
	return nil
}

// PutRadical files a weighted seed for a radical (power) diagram. It
// fails on a non-radical container; use Put there instead.
func (c *Container) PutRadical(id int, x, y, z, r float64) error {
	if !c.opts.radical {
		return fmt.Errorf("%w: container is not radical, call Put", ErrRadicalModeMismatch)
	}
	if err := c.checkDomain(x, y, z); err != nil {
		return err
	}
	if err := c.grid.PutRadical(id, x, y, z, r); err != nil {
		return wrapGridError(err)
	}
	c.seeds[id] = seedRecord{x: x, y: y, z: z, r: r}
	return nil
}

// wrapGridError promotes a grid-level error to its voro-level
// sentinel while keeping the original in the chain, so a caller can
// match either with errors.Is.
func wrapGridError(err error) error {
	if errors.Is(err, grid.ErrOutOfDomain) {
		return fmt.Errorf("voro: %w: %w", ErrOutOfDomain, err)
	}
	return fmt.Errorf("voro: %w", err)
}

// Import reads whitespace-separated records, one per line, of the
// form "id x y z" (or "id x y z r" for a radical container), calling
// Put/PutRadical for each. A malformed or out-of-domain line does not
// abort the import: it is logged and its error collected, and Import
// continues with the next line. It returns the number of records
// successfully filed and every per-line error encountered.
func (c *Container) Import(r io.Reader) (int, []error) {
	scanner := bufio.NewScanner(r)
	var ok int
	var errs []error
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		wantFields := 4
		if c.opts.radical {
			wantFields = 5
		}
		if len(fields) != wantFields {
			err := fmt.Errorf("voro: line %d: want %d fields, got %d", lineNo, wantFields, len(fields))
			c.opts.logger.Warn().Err(err).Int("line", lineNo).Msg("import: skipping malformed record")
			errs = append(errs, err)
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			err = fmt.Errorf("voro: line %d: bad id %q: %w", lineNo, fields[0], err)
			c.opts.logger.Warn().Err(err).Int("line", lineNo).Msg("import: skipping malformed record")
			errs = append(errs, err)
			continue
		}
		vals := make([]float64, len(fields)-1)
		parseErr := false
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				err = fmt.Errorf("voro: line %d: bad coordinate %q: %w", lineNo, f, err)
				c.opts.logger.Warn().Err(err).Int("line", lineNo).Msg("import: skipping malformed record")
				errs = append(errs, err)
				parseErr = true
				break
			}
			vals[i] = v
		}
		if parseErr {
			continue
		}
		if c.opts.radical {
			err = c.PutRadical(id, vals[0], vals[1], vals[2], vals[3])
		} else {
			err = c.Put(id, vals[0], vals[1], vals[2])
		}
		if err != nil {
			c.opts.logger.Warn().Err(err).Int("line", lineNo).Int("id", id).Msg("import: rejecting record")
			errs = append(errs, err)
			continue
		}
		ok++
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("voro: reading input: %w", err))
	}
	return ok, errs
}

// CellResult is the outcome of computing one seed's cell.
type CellResult struct {
	SeedID  int
	Seed    [3]float64
	Volume  float64
	MaxRadiusSq   float64
	// Vertices holds the cell's vertex positions in the seed's local
	// frame (the seed sits at the origin); add Seed to translate a
	// vertex into container coordinates.
	Vertices      [][3]float64
	Faces         [][]int
	FaceHistogram map[int]int
	NeighborIDs   []int
}

// cutter is the subset of cell.Cell/cell.NeighborCell that
// ComputeCell drives; it lets the same loop serve both modes.
type cutter interface {
	InitBox(xmin, xmax, ymin, ymax, zmin, zmax float64)
	SetTolerance(tol float64)
	Volume() float64
	MaxRadiusSq() float64
	Vertices() [][3]float64
	FaceVertexLists() [][]int
	FaceSizeHistogram() map[int]int
	CheckRelations() error
	cut(dx, dy, dz, rsq float64, tag int) (bool, error)
}

type plainCutter struct{ *cell.Cell }

func (p plainCutter) cut(dx, dy, dz, rsq float64, tag int) (bool, error) {
	return p.Plane(dx, dy, dz, rsq)
}

type neighborCutter struct{ *cell.NeighborCell }

func (n neighborCutter) cut(dx, dy, dz, rsq float64, tag int) (bool, error) {
	return n.NPlane(dx, dy, dz, rsq, tag)
}

func (c *Container) newCutter() cutter {
	if c.opts.neighborTracking {
		nc := cell.NewNeighborCell()
		nc.SetTolerance(c.opts.tolerance)
		return neighborCutter{nc}
	}
	pc := cell.New()
	pc.SetTolerance(c.opts.tolerance)
	return plainCutter{pc}
}

// ComputeCell computes the Voronoi (or radical) cell of the named
// seed to convergence, using the early-termination rule: once every
// unvisited block's minimum distance to the seed exceeds twice the
// cell's current maximum vertex radius (widened by the largest seed
// weight, in radical mode), no further neighbour could possibly cut
// the cell further, since a neighbour at distance d bisects at d/2,
// and the search stops. Returns (nil, nil), not an error,
// when the seed's neighbours consume its cell entirely.
func (c *Container) ComputeCell(seed int) (*CellResult, error) {
	rec, ok := c.seeds[seed]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeed, seed)
	}

	cl := c.newCutter()
	x1, x2, y1, y2, z1, z2 := c.initialBounds(rec.x, rec.y, rec.z)
	cl.InitBox(x1, x2, y1, y2, z1, z2)

	searchRadius := c.domainDiagonal()
	cur := grid.NewBallCursor(c.grid, rec.x, rec.y, rec.z, searchRadius)

	bound := func() float64 {
		b := 2 * math.Sqrt(cl.MaxRadiusSq())
		if c.opts.radical {
			b += c.grid.MaxWeight()
		}
		return b * b
	}

	for {
		nextMin, more := cur.PeekMinDistSq()
		if !more || nextMin > bound() {
			break
		}
		block, offset, ok := cur.Next()
		if !ok {
			break
		}
		n := len(c.grid.ID[block])
		for q := 0; q < n; q++ {
			id, px, py, pz, pr := c.grid.Particle(block, q)
			px += offset[0]
			py += offset[1]
			pz += offset[2]
			if id == seed && offset == [3]float64{} {
				continue
			}
			dx, dy, dz := px-rec.x, py-rec.y, pz-rec.z
			d2 := dx*dx + dy*dy + dz*dz
			if d2 == 0 {
				continue
			}
			rsq := d2 / 2
			if c.opts.radical {
				rsq = (d2 + rec.r*rec.r - pr*pr) / 2
			}
			alive, err := cl.cut(dx, dy, dz, rsq, id)
			if err != nil {
				return nil, fmt.Errorf("voro: computing cell for seed %d: %w", seed, err)
			}
			if !alive {
				return nil, nil
			}
		}
	}

	if err := cl.CheckRelations(); err != nil {
		return nil, fmt.Errorf("voro: computing cell for seed %d: %w", seed, err)
	}

	res := &CellResult{
		SeedID:        seed,
		Seed:          [3]float64{rec.x, rec.y, rec.z},
		Volume:        cl.Volume(),
		MaxRadiusSq:   cl.MaxRadiusSq(),
		Vertices:      cl.Vertices(),
		Faces:         cl.FaceVertexLists(),
		FaceHistogram: cl.FaceSizeHistogram(),
	}
	if nc, ok := cl.(neighborCutter); ok {
		res.NeighborIDs = nc.LabelFacets()
	}
	return res, nil
}

// initialBounds returns the seed-local box a fresh cell starts as: on
// a periodic axis, the space is split evenly either side of the seed
// (its neighbouring periodic images will bound it properly); on a
// non-periodic axis, the container's own wall does.
func (c *Container) initialBounds(sx, sy, sz float64) (x1, x2, y1, y2, z1, z2 float64) {
	if c.Periodic[0] {
		half := 0.5 * (c.Box.Xmax - c.Box.Xmin)
		x1, x2 = -half, half
	} else {
		x1, x2 = c.Box.Xmin-sx, c.Box.Xmax-sx
	}
	if c.Periodic[1] {
		half := 0.5 * (c.Box.Ymax - c.Box.Ymin)
		y1, y2 = -half, half
	} else {
		y1, y2 = c.Box.Ymin-sy, c.Box.Ymax-sy
	}
	if c.Periodic[2] {
		half := 0.5 * (c.Box.Zmax - c.Box.Zmin)
		z1, z2 = -half, half
	} else {
		z1, z2 = c.Box.Zmin-sz, c.Box.Zmax-sz
	}
	return
}

// domainDiagonal returns twice the distance from the box's centre to
// its corner, an upper bound on how far a search must reach from any
// seed inside the box to be sure of visiting every block that could
// still contribute a vertex.
func (c *Container) domainDiagonal() float64 {
	corner := r3.Vector{X: c.Box.Xmax, Y: c.Box.Ymax, Z: c.Box.Zmax}
	return 2 * corner.Sub(c.Box.Center()).Norm()
}

// RegionCount returns the live particle count of every grid block,
// for diagnosing an unbalanced subdivision.
func (c *Container) RegionCount() []grid.BlockCount {
	return c.grid.RegionCount()
}

// seedIDs returns every filed seed id in ascending order, giving
// ComputeAll a deterministic iteration order.
func (c *Container) seedIDs() []int {
	ids := make([]int, 0, len(c.seeds))
	for id := range c.seeds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ComputeAll computes every filed seed's cell, fanning the
// independent per-seed computations out across a worker pool sized to
// the available CPUs. Nothing but the read-only Grid is shared across
// goroutines: each gets its own cell.Cell/cell.NeighborCell and its
// own Cursor. Results are returned in ascending seed-id order,
// alongside every per-cell error encountered (a failure computing one
// seed does not stop the others).
func (c *Container) ComputeAll() ([]*CellResult, []error) {
	ids := c.seedIDs()
	results := make([]*CellResult, len(ids))
	failures := make([]error, len(ids))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			res, err := c.ComputeCell(id)
			results[i] = res
			failures[i] = err
			return nil
		})
	}
	_ = eg.Wait()

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errs
}
