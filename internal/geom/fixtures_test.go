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

package geom_test

import (
	"github.com/golang/geo/r3"

	"m4o.io/val3d/internal/geom"
)

func v(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

var cubeFaces = [][]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

func cubeVertices(origin r3.Vector, size float64) []r3.Vector {
	unit := []r3.Vector{
		v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0),
		v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1),
	}

	out := make([]r3.Vector, len(unit))
	for i, u := range unit {
		out[i] = origin.Add(u.Mul(size))
	}

	return out
}

func polygon(rings ...[]r3.Vector) *geom.Polygon {
	p, ok := geom.NewPolygon(rings)
	if !ok {
		panic("degenerate polygon")
	}

	return p
}

func cubeShell(origin r3.Vector, size float64, inward bool) *geom.Shell {
	pts := cubeVertices(origin, size)

	faces := make([]*geom.Polygon, len(cubeFaces))
	for i, f := range cubeFaces {
		ring := make([]r3.Vector, len(f))
		for j, idx := range f {
			ring[j] = pts[idx]
		}

		if inward {
			for l, r := 0, len(ring)-1; l < r; l, r = l+1, r-1 {
				ring[l], ring[r] = ring[r], ring[l]
			}
		}

		faces[i] = polygon(ring)
	}

	return geom.NewShell(faces)
}
