// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voro

import "github.com/golang/geo/r3"

// Box is the axis-aligned domain a Container subdivides.
type Box struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	Zmin, Zmax float64
}

// Center returns the box's midpoint.
func (b Box) Center() r3.Vector {
	return r3.Vector{
		X: 0.5 * (b.Xmin + b.Xmax),
		Y: 0.5 * (b.Ymin + b.Ymax),
		Z: 0.5 * (b.Zmin + b.Zmax),
	}
}

// Diagonal returns the vector from the box's minimum to its maximum
// corner.
func (b Box) Diagonal() r3.Vector {
	return r3.Vector{X: b.Xmax - b.Xmin, Y: b.Ymax - b.Ymin, Z: b.Zmax - b.Zmin}
}

// Contains reports whether p lies within the box (inclusive).
func (b Box) Contains(p r3.Vector) bool {
	return p.X >= b.Xmin && p.X <= b.Xmax &&
		p.Y >= b.Ymin && p.Y <= b.Ymax &&
		p.Z >= b.Zmin && p.Z <= b.Zmax
}
