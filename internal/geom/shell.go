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

package geom

import (
	"math"

	"github.com/golang/geo/r3"

	"m4o.io/val3d/model"
)

// Shell is a closed set of faces bounding a volume.
type Shell struct {
	Faces []*Polygon
	Box   *model.BoundingBox
}

// NewShell builds a shell from its faces.
func NewShell(faces []*Polygon) *Shell {
	s := &Shell{Faces: faces, Box: model.InitialBoundingBox()}
	for _, f := range faces {
		s.Box.ExpandWithBoundingBox(f.Box)
	}

	return s
}

// Vertices returns the vertices of every face.
func (s *Shell) Vertices() []r3.Vector {
	var out []r3.Vector
	for _, f := range s.Faces {
		out = append(out, f.Vertices()...)
	}

	return out
}

// SignedVolume is positive when the faces are oriented outward.
func (s *Shell) SignedVolume() float64 {
	var v float64
	for _, f := range s.Faces {
		v += f.Rings[0][0].Dot(f.AreaVector())
	}

	return v / 3
}

// rayDirections avoids the coordinate axes and planes, which axis-aligned
// building geometry would make degenerate.
var rayDirections = [...]r3.Vector{
	{X: 0.5773, Y: 0.5917, Z: 0.5627},
	{X: -0.3129, Y: 0.8412, Z: 0.4411},
	{X: 0.7071, Y: -0.3090, Z: -0.6361},
	{X: -0.6123, Y: -0.4472, Z: 0.6519},
	{X: 0.2236, Y: 0.1414, Z: -0.9644},
	{X: -0.8660, Y: 0.2679, Z: -0.4226},
	{X: 0.1732, Y: -0.9511, Z: 0.2553},
}

// Locate locates p relative to the volume bounded by the shell, by casting
// rays and counting face crossings. A ray grazing an edge or lying in a face
// plane is discarded for the next direction.
func (s *Shell) Locate(p r3.Vector, eps float64) Location {
	if p.X < s.Box.Min.X-eps || p.Y < s.Box.Min.Y-eps || p.Z < s.Box.Min.Z-eps ||
		p.X > s.Box.Max.X+eps || p.Y > s.Box.Max.Y+eps || p.Z > s.Box.Max.Z+eps {
		return Outside
	}

	for _, f := range s.Faces {
		if f.Locate(p, eps) != Outside {
			return OnBoundary
		}
	}

	for _, dir := range rayDirections {
		if loc, ok := s.cast(p, dir.Normalize(), eps); ok {
			return loc
		}
	}

	return Outside
}

func (s *Shell) cast(p, dir r3.Vector, eps float64) (Location, bool) {
	crossings := 0

	for _, f := range s.Faces {
		n := f.Normal()
		d0 := f.Plane().Distance(p)

		dn := dir.Dot(n)
		if math.Abs(dn) < 1e-12 {
			if math.Abs(d0) <= eps {
				return Outside, false
			}

			continue
		}

		t := -d0 / dn
		if t <= 0 {
			continue
		}

		switch f.Locate2D(f.Frame.Project(p.Add(dir.Mul(t))), eps) {
		case Inside:
			crossings++
		case OnBoundary:
			return Outside, false
		case Outside:
		}
	}

	if crossings%2 == 1 {
		return Inside, true
	}

	return Outside, true
}

// InteriorPoint returns a point strictly inside the volume, found by
// stepping off the interior point of a face along its normal.
func (s *Shell) InteriorPoint(eps float64) (r3.Vector, bool) {
	step := max(10*eps, s.Box.Diagonal()*1e-3)

	for _, f := range s.Faces {
		c, ok := f.InteriorPoint(eps)
		if !ok {
			continue
		}

		for d := step; d > eps; d /= 4 {
			for _, q := range [...]r3.Vector{c.Sub(f.Normal().Mul(d)), c.Add(f.Normal().Mul(d))} {
				if s.Locate(q, eps) == Inside {
					return q, true
				}
			}
		}
	}

	return r3.Vector{}, false
}
