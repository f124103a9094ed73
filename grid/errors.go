// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package grid

import "errors"

// ErrOutOfDomain is returned by Put/PutRadical when a non-periodic
// coordinate falls outside the container's bounds.
var ErrOutOfDomain = errors.New("grid: coordinate outside container bounds")
