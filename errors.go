// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voro

import "errors"

// ErrOutOfDomain mirrors grid.ErrOutOfDomain at the Container level;
// Put/PutRadical wrap the grid's sentinel with this one so callers can
// errors.Is against either.
var ErrOutOfDomain = errors.New("voro: coordinate outside container bounds")

// ErrUnknownSeed is returned by ComputeCell for a seed id that was
// never passed to Put or PutRadical.
var ErrUnknownSeed = errors.New("voro: unknown seed id")

// ErrRadicalModeMismatch is returned when Put is called on a radical
// container, or PutRadical on a non-radical one.
var ErrRadicalModeMismatch = errors.New("voro: wrong Put method for this container's mode")
