// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voro

import (
	"fmt"

	"github.com/rs/zerolog"
)

type options struct {
	radical          bool
	neighborTracking bool
	tolerance        float64
	logger           zerolog.Logger
}

// Option configures a Container at construction time.
type Option func(*options) error

// WithRadical switches the container to radical (power) diagram mode:
// Put is disabled and PutRadical must be used instead, and every
// per-seed cut accounts for the seeds' relative weights.
func WithRadical() Option {
	return func(o *options) error {
		o.radical = true
		return nil
	}
}

// WithNeighborTracking makes ComputeCell/ComputeAll use a
// cell.NeighborCell internally, populating CellResult.NeighborIDs.
func WithNeighborTracking() Option {
	return func(o *options) error {
		o.neighborTracking = true
		return nil
	}
}

// WithTolerance overrides the on-plane band cell.Classifier uses
// during every cut this container performs.
func WithTolerance(tol float64) Option {
	return func(o *options) error {
		if tol < 0 {
			return fmt.Errorf("WithTolerance: tol must be non-negative, got %v", tol)
		}
		o.tolerance = tol
		return nil
	}
}

// WithLogger overrides the zerolog.Logger used for Import's per-line
// diagnostics. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
