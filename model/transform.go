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

package model

import (
	"math"
)

// Transform maps stored coordinates to the coordinates that are welded and
// validated: p*Scale + Translate - Origin, per axis.
type Transform struct {
	Scale     Point3 `json:"scale"`
	Translate Point3 `json:"translate"`
	Origin    Point3 `json:"origin"`
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: Point3{X: 1, Y: 1, Z: 1}}
}

// Apply maps p.
func (t Transform) Apply(p Point3) Point3 {
	return Point3{
		X: p.X*t.Scale.X + t.Translate.X - t.Origin.X,
		Y: p.Y*t.Scale.Y + t.Translate.Y - t.Origin.Y,
		Z: p.Z*t.Scale.Z + t.Translate.Z - t.Origin.Z,
	}
}

// Centered returns a copy of t whose origin is the minimum x and y of pts
// after scaling and translation, so that the mapped points sit near zero.
// The z axis is left untouched.
func (t Transform) Centered(pts []Point3) Transform {
	if len(pts) == 0 {
		return t
	}

	c := t
	c.Origin = Point3{}

	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range pts {
		q := c.Apply(p)
		minX = min(minX, q.X)
		minY = min(minY, q.Y)
	}

	c.Origin = Point3{X: minX, Y: minY}

	return c
}
