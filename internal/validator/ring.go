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

package validator

import (
	"fmt"
	"slices"

	"m4o.io/val3d/internal/geom"
	"m4o.io/val3d/model"
)

func ringLabel(s *model.Surface, fi, ri int) string {
	return fmt.Sprintf("face %s ring %d", s.FaceLabel(fi), ri)
}

// validateRing normalizes ring ri of face fi and checks it. The returned ring
// has no closing point.
func (e *Engine) validateRing(s *model.Surface, fi, ri int, ring model.Ring) (model.Ring, bool) {
	label := ringLabel(s, fi, ri)

	n := len(ring)
	switch {
	case n == 0:
		s.Errors.Add(model.TooFewPoints, label+": empty ring")

		return nil, false
	case ring[0] == ring[n-1]:
		ring = slices.Clone(ring[:n-1])
	default:
		s.Errors.Add(model.RingNotClosed, fmt.Sprintf("%s: first %s and last %s differ",
			label, model.FormatPoint(s.Point(ring[0])), model.FormatPoint(s.Point(ring[n-1]))))

		return nil, false
	}

	distinct := make(map[int]struct{}, len(ring))
	for _, i := range ring {
		distinct[i] = struct{}{}
	}

	if len(distinct) < 3 {
		s.Errors.Add(model.TooFewPoints, fmt.Sprintf("%s: %d distinct points", label, len(distinct)))

		return ring, false
	}

	ok := true

	if dedup := dropConsecutive(ring); len(dedup) != len(ring) {
		s.Errors.Add(model.ConsecutivePointsSame, label)

		ok = false
		ring = dedup
	}

	pts := s.RingPoints(ring)
	if collinear(pts, e.eps) {
		s.Errors.Add(model.RingCollapsed, label)

		return ring, false
	}

	if e.selfIntersects(ring, pts) {
		s.Errors.Add(model.RingSelfIntersection, label)

		ok = false
	}

	return ring, ok
}

func dropConsecutive(ring model.Ring) model.Ring {
	out := make(model.Ring, 0, len(ring))
	for i, idx := range ring {
		if idx != ring[(i+1)%len(ring)] {
			out = append(out, idx)
		}
	}

	return out
}

// collinear checks that every point lies within eps of the line through the
// first point and the point farthest from it.
func collinear(pts []model.Point3, eps float64) bool {
	a := pts[0]

	far, farDist := a, 0.0
	for _, p := range pts[1:] {
		if d := p.Distance(a); d > farDist {
			far, farDist = p, d
		}
	}

	if farDist <= eps {
		return true
	}

	dir := far.Sub(a).Normalize()
	for _, p := range pts {
		if p.Sub(a).Cross(dir).Norm() > eps {
			return false
		}
	}

	return true
}

// selfIntersects checks the ring in its best-fit plane: a vertex visited
// twice, non-adjacent edges meeting, or adjacent edges folding back onto each
// other.
func (e *Engine) selfIntersects(ring model.Ring, pts []model.Point3) bool {
	seen := make(map[int]struct{}, len(ring))
	for _, i := range ring {
		if _, dup := seen[i]; dup {
			return true
		}

		seen[i] = struct{}{}
	}

	plane, ok := geom.FitPlane(pts)
	if !ok {
		return false
	}

	p2 := geom.NewFrame(plane.Origin, plane.Normal).ProjectAll(pts)

	n := len(p2)
	for i := 0; i < n; i++ {
		a, b := p2[i], p2[(i+1)%n]

		for j := i + 1; j < n; j++ {
			c, d := p2[j], p2[(j+1)%n]

			kind, _ := geom.IntersectSegments(a, b, c, d, e.eps)

			adjacent := j == i+1 || (i == 0 && j == n-1)
			switch {
			case kind == geom.Disjoint:
			case adjacent && kind != geom.Overlap:
			default:
				return true
			}
		}
	}

	return false
}
