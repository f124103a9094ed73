// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command voro computes a Voronoi or radical tessellation of a
// randomly generated point set and writes it out in one
// or more of the supported plotting/mesh formats.
package main

import (
	"io"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/2dChan/voro"
	"github.com/2dChan/voro/voroio"
	"github.com/2dChan/voro/voroutil"
)

type config struct {
	xmin, xmax float64
	ymin, ymax float64
	zmin, zmax float64
	nx, ny, nz int
	numPoints  int
	seed       int64
	radical    bool
	tracking   bool
	gnuplot    string
	pov        string
	povMesh    string
	facets     string
	neighbors  string
	regions    string
	svgPreview string
	svgWidth   int
}

func parseFlags() config {
	var c config
	pflag.Float64Var(&c.xmin, "xmin", 0, "domain lower x bound")
	pflag.Float64Var(&c.xmax, "xmax", 10, "domain upper x bound")
	pflag.Float64Var(&c.ymin, "ymin", 0, "domain lower y bound")
	pflag.Float64Var(&c.ymax, "ymax", 10, "domain upper y bound")
	pflag.Float64Var(&c.zmin, "zmin", 0, "domain lower z bound")
	pflag.Float64Var(&c.zmax, "zmax", 10, "domain upper z bound")
	pflag.IntVar(&c.nx, "nx", 6, "grid blocks along x")
	pflag.IntVar(&c.ny, "ny", 6, "grid blocks along y")
	pflag.IntVar(&c.nz, "nz", 6, "grid blocks along z")
	pflag.IntVar(&c.numPoints, "points", 200, "number of random seed points")
	pflag.Int64Var(&c.seed, "seed", 0, "random seed")
	pflag.BoolVar(&c.radical, "radical", false, "compute a radical (power) diagram with random weights")
	pflag.BoolVar(&c.tracking, "neighbors", false, "track per-face neighbour seed ids")
	pflag.StringVar(&c.gnuplot, "gnuplot", "", "write gnuplot output to this file")
	pflag.StringVar(&c.pov, "pov", "", "write POV-Ray primitive output to this file")
	pflag.StringVar(&c.povMesh, "pov-mesh", "", "write POV-Ray mesh2 output to this file")
	pflag.StringVar(&c.facets, "facets", "", "write per-face vertex listings to this file")
	pflag.StringVar(&c.neighbors, "neighbors-out", "", "write per-face neighbour ids to this file")
	pflag.StringVar(&c.regions, "region-count", "", "write per-block occupancy counts to this file")
	pflag.StringVar(&c.svgPreview, "svg", "", "write a 2-D (x,y) projection preview to this file")
	pflag.IntVar(&c.svgWidth, "svg-width", 800, "svg preview width in pixels")
	pflag.Parse()
	return c
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	c := parseFlags()

	bounds := voro.Box{
		Xmin: c.xmin, Xmax: c.xmax,
		Ymin: c.ymin, Ymax: c.ymax,
		Zmin: c.zmin, Zmax: c.zmax,
	}

	opts := []voro.Option{voro.WithLogger(logger)}
	if c.radical {
		opts = append(opts, voro.WithRadical())
	}
	if c.tracking {
		opts = append(opts, voro.WithNeighborTracking())
	}

	container, err := voro.NewContainer(bounds, c.nx, c.ny, c.nz, [3]bool{}, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating container")
	}

	var seeds []voroutil.Seed
	if c.radical {
		seeds = voroutil.GenerateRandomRadicalPoints(c.numPoints, bounds, 0.05, 0.3, c.seed)
	} else {
		seeds = voroutil.GenerateRandomPoints(c.numPoints, bounds, c.seed)
	}
	if err := voroutil.FileInto(container, seeds, c.radical); err != nil {
		logger.Fatal().Err(err).Msg("filing seeds")
	}

	results, errs := container.ComputeAll()
	for _, e := range errs {
		logger.Warn().Err(e).Msg("cell computation failed")
	}
	logger.Info().Int("cells", len(results)).Int("failures", len(errs)).Msg("tessellation complete")

	writeOutputs(logger, c, container, results)
}

func writeOutputs(logger zerolog.Logger, c config, container *voro.Container, results []*voro.CellResult) {
	type target struct {
		path  string
		write func(io.Writer) error
	}
	targets := []target{
		{c.gnuplot, func(f io.Writer) error { return voroio.WriteGnuplotAll(f, results) }},
		{c.facets, func(f io.Writer) error { return writeEach(f, results, voroio.WriteFacets) }},
		{c.pov, func(f io.Writer) error { return writeEach(f, results, voroio.WritePOV) }},
		{c.povMesh, func(f io.Writer) error { return writeEach(f, results, voroio.WritePOVMesh) }},
		{c.neighbors, func(f io.Writer) error { return writeEach(f, results, voroio.WriteNeighbors) }},
		{c.regions, func(f io.Writer) error { return voroio.WriteRegionCount(f, container.RegionCount()) }},
	}
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		if err := writeToFile(t.path, t.write); err != nil {
			logger.Error().Err(err).Str("path", t.path).Msg("writing output")
		}
	}
	if c.svgPreview != "" {
		if err := writeSVGPreview(c, results); err != nil {
			logger.Error().Err(err).Str("path", c.svgPreview).Msg("writing svg preview")
		}
	}
}

func writeEach(f io.Writer, results []*voro.CellResult, fn func(io.Writer, *voro.CellResult) error) error {
	for _, res := range results {
		if res == nil {
			continue
		}
		if err := fn(f, res); err != nil {
			return err
		}
	}
	return nil
}

func writeToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// writeSVGPreview renders an axis-aligned (x, y) projection of every
// cell's edges, the same "project and draw polygons" shape as the
// teacher's own S2 renderer, but onto a flat Cartesian domain instead
// of a Mercator-projected sphere.
func writeSVGPreview(c config, results []*voro.CellResult) error {
	f, err := os.Create(c.svgPreview)
	if err != nil {
		return err
	}
	defer f.Close()

	width := c.svgWidth
	height := width
	xspan := c.xmax - c.xmin
	yspan := c.ymax - c.ymin
	toScreen := func(x, y float64) (int, int) {
		sx := int((x - c.xmin) / xspan * float64(width))
		sy := int((y - c.ymin) / yspan * float64(height))
		return sx, sy
	}

	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:rgb(255,255,255)")
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, face := range res.Faces {
			xs := make([]int, len(face))
			ys := make([]int, len(face))
			for i, v := range face {
				vx, vy := res.Vertices[v][0], res.Vertices[v][1]
				xs[i], ys[i] = toScreen(res.Seed[0]+vx, res.Seed[1]+vy)
			}
			canvas.Polygon(xs, ys, "fill:none;stroke:rgb(170,170,170);stroke-width:1")
		}
		sx, sy := toScreen(res.Seed[0], res.Seed[1])
		canvas.Circle(sx, sy, 2, "fill:rgb(255,0,0)")
	}
	canvas.End()
	return nil
}
