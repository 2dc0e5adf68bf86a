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
	"math"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"m4o.io/val3d/internal/geom"
	"m4o.io/val3d/model"
)

// validateFace checks face fi of the surface and returns its polygon. The
// face rings are replaced by their normalized form and a pending
// orientation flip is applied first.
func (e *Engine) validateFace(s *model.Surface, fi int) (*geom.Polygon, bool) {
	f := &s.Faces[fi]

	if len(f.Rings) == 0 {
		s.Errors.Add(model.TooFewPoints, fmt.Sprintf("face %s: no rings", s.FaceLabel(fi)))

		return nil, false
	}

	rings := make([]model.Ring, len(f.Rings))

	ok := true
	for ri, r := range f.Rings {
		if f.Reversed {
			r = r.Reversed()
		}

		nr, rok := e.validateRing(s, fi, ri, r)
		if nr == nil {
			nr = r
		}

		rings[ri] = nr
		ok = ok && rok
	}

	f.Rings = rings
	f.Reversed = false

	if !ok {
		return nil, false
	}

	return e.checkFace(s, fi)
}

// facePolygon builds the polygon of an already normalized face.
func facePolygon(s *model.Surface, fi int) (*geom.Polygon, bool) {
	f := s.Faces[fi]

	rings := make([][]r3.Vector, len(f.Rings))
	for ri, r := range f.Rings {
		rings[ri] = s.RingPoints(r)
	}

	return geom.NewPolygon(rings)
}

func (e *Engine) checkFace(s *model.Surface, fi int) (*geom.Polygon, bool) {
	label := "face " + s.FaceLabel(fi)
	f := s.Faces[fi]

	poly, ok := facePolygon(s, fi)
	if !ok {
		s.Errors.Add(model.RingCollapsed, label)

		return nil, false
	}

	if !e.checkPlanarity(s, label, poly) {
		return poly, false
	}

	if len(f.Rings) == 1 {
		return poly, true
	}

	if !checkDuplicatedRings(s, label, f.Rings) {
		return poly, false
	}

	if !e.checkRingInteraction(s, label, poly) {
		return poly, false
	}

	return poly, checkHoles(s, label, poly, e.eps)
}

func (e *Engine) checkPlanarity(s *model.Surface, label string, poly *geom.Polygon) bool {
	ok := true

	plane, _ := geom.FitPlane(poly.Rings[0])

	worst := 0.0
	for _, ring := range poly.Rings {
		for _, p := range ring {
			worst = max(worst, math.Abs(plane.Distance(p)))
		}
	}

	if worst > e.tol.PlanarityD2P {
		s.Errors.Add(model.NonPlanarPolygonDistancePlane, fmt.Sprintf("%s: distance to plane %s", label, strconv.FormatFloat(worst, 'g', 6, 64)))

		ok = false
	}

	deviation := 0.0
	for _, ring := range poly.Rings {
		n := len(ring)
		for i, cur := range ring {
			prev, next := ring[(i+n-1)%n], ring[(i+1)%n]

			vn := next.Sub(cur).Cross(prev.Sub(cur))
			if vn.Norm() <= geom.MinTolerance {
				continue
			}

			a := vn.Angle(plane.Normal).Degrees()
			deviation = max(deviation, min(a, 180-a))
		}
	}

	if deviation > e.tol.PlanarityNormal {
		s.Errors.Add(model.NonPlanarPolygonNormalsDeviation, fmt.Sprintf("%s: normals deviate by %s", label, model.Degrees(model.Round(deviation, model.E3))))

		ok = false
	}

	return ok
}

func ringKey(r model.Ring) string {
	return faceKey(model.Face{Rings: []model.Ring{r}}, nil)
}

func checkDuplicatedRings(s *model.Surface, label string, rings []model.Ring) bool {
	ok := true

	seen := make(map[string]int, len(rings))
	for ri, r := range rings {
		k := ringKey(r)
		if first, dup := seen[k]; dup {
			s.Errors.Add(model.DuplicatedRings, fmt.Sprintf("%s: rings %d and %d", label, first, ri))

			ok = false

			continue
		}

		seen[k] = ri
	}

	return ok
}

// checkRingInteraction looks for crossing rings (201) and for touching
// patterns that cut the interior in pieces (205): two rings meeting at more
// than one point, or rings touching in a cycle.
func (e *Engine) checkRingInteraction(s *model.Surface, label string, poly *geom.Polygon) bool {
	rings := poly.Rings2D
	touching := newGraph(sequence(len(rings)))

	ok := true
	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			touches, crossing := ringContact(rings[i], rings[j], e.eps)

			switch {
			case crossing:
				s.Errors.Add(model.IntersectionRings, fmt.Sprintf("%s: rings %d and %d", label, i, j))

				ok = false
			case len(touches) > 1:
				s.Errors.Add(model.PolygonInteriorDisconnected, fmt.Sprintf("%s: rings %d and %d touch at %d points", label, i, j, len(touches)))

				ok = false
			case len(touches) == 1 && !link(touching, i, j):
				s.Errors.Add(model.PolygonInteriorDisconnected, fmt.Sprintf("%s: rings touching in a cycle closed by rings %d and %d", label, i, j))

				ok = false
			}
		}
	}

	return ok
}

func ringContact(a, b []r2.Point, eps float64) ([]r2.Point, bool) {
	var touches []r2.Point

	for i, p := range a {
		q := a[(i+1)%len(a)]

		for j, c := range b {
			d := b[(j+1)%len(b)]

			kind, pts := geom.IntersectSegments(p, q, c, d, eps)
			switch kind {
			case geom.Proper, geom.Overlap:
				return nil, true
			case geom.Touch:
				for _, t := range pts {
					touches = geom.AppendUnique(touches, t, eps)
				}
			case geom.Disjoint:
			}
		}
	}

	return touches, false
}

// checkHoles checks inner rings against the outer ring and each other, and
// their winding against the outer ring, which is counter-clockwise in the
// polygon frame.
func checkHoles(s *model.Surface, label string, poly *geom.Polygon, eps float64) bool {
	ok := true

	outer := poly.Rings2D[0]
	inner := poly.Rings2D[1:]

	reps := make([]r2.Point, len(inner))
	for i, hole := range inner {
		rep, found := geom.InteriorPoint2D([][]r2.Point{hole}, eps)
		if !found {
			rep = hole[0]
		}

		reps[i] = rep

		if geom.LocateInRing(rep, outer, eps) != geom.Inside {
			s.Errors.Add(model.InnerRingOutside, fmt.Sprintf("%s: ring %d", label, i+1))

			ok = false
		}
	}

	for i := range inner {
		for j := range inner {
			if i != j && geom.LocateInRing(reps[i], inner[j], eps) == geom.Inside {
				s.Errors.Add(model.InnerRingsNested, fmt.Sprintf("%s: ring %d inside ring %d", label, i+1, j+1))

				ok = false
			}
		}
	}

	for i, hole := range inner {
		if geom.SignedArea(hole) > 0 {
			s.Errors.Add(model.OrientationRingsSame, fmt.Sprintf("%s: ring %d", label, i+1))

			ok = false
		}
	}

	return ok
}
