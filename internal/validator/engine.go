// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validator runs the hierarchical validation cascade: rings, faces,
// shells, solids, composites and features. Findings are recorded on the
// primitives themselves; a level is only checked when the level below it is
// valid.
package validator

import (
	"log/slog"

	"m4o.io/val3d/internal/geom"
)

// Tolerances drive the numeric decisions of the cascade.
type Tolerances struct {
	// Snap is the vertex welding distance.
	Snap float64

	// PlanarityD2P is the largest distance of a face point to the face plane.
	PlanarityD2P float64

	// PlanarityNormal is the largest deviation, in degrees, of a vertex
	// normal from the face normal.
	PlanarityNormal float64

	// Overlap is the tolerance of the shell self-intersection test; a
	// negative value disables that test.
	Overlap float64
}

// DefaultTolerances returns the tolerances used when none are given.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Snap:            0.001,
		PlanarityD2P:    0.01,
		PlanarityNormal: 20.0,
		Overlap:         -1.0,
	}
}

// Engine validates primitives. It holds no per-primitive state and may be
// shared by goroutines validating distinct primitives.
type Engine struct {
	tol Tolerances
	log *slog.Logger

	eps        float64
	contactEps float64
}

// New creates an engine. A nil logger means slog.Default().
func New(tol Tolerances, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		tol:        tol,
		log:        log,
		eps:        geom.Tolerance(tol.Snap),
		contactEps: geom.Tolerance(tol.Snap, tol.Overlap),
	}
}

// Tolerances returns the tolerances of the engine.
func (e *Engine) Tolerances() Tolerances {
	return e.tol
}
