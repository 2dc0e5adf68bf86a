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

	"github.com/golang/geo/r2"
)

// Intersection classifies how two segments meet.
type Intersection int

const (
	// Disjoint segments do not meet.
	Disjoint Intersection = iota
	// Touch means the segments meet at a single point which is an endpoint
	// of at least one of them.
	Touch
	// Overlap means the segments are collinear and share a stretch of
	// positive length.
	Overlap
	// Proper means the segments cross at a point interior to both.
	Proper
)

// Orient returns twice the signed area of the triangle abc: positive when c
// lies left of ab.
func Orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// SignedArea returns the signed area of a ring given without its closing
// point, positive when counter-clockwise.
func SignedArea(ring []r2.Point) float64 {
	var area float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		area += a.Cross(b)
	}

	return area / 2
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b r2.Point) float64 {
	ab := b.Sub(a)

	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Norm()
	}

	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)

	return p.Sub(a.Add(ab.Mul(t))).Norm()
}

// sideOf returns the signed distance of p to the line through ab.
func sideOf(p, a, b r2.Point) float64 {
	ab := b.Sub(a)

	n := ab.Norm()
	if n == 0 {
		return p.Sub(a).Norm()
	}

	return ab.Cross(p.Sub(a)) / n
}

// IntersectSegments classifies segments ab and cd with tolerance eps. For
// Touch the contact points are returned, for Overlap the two ends of the
// shared stretch and for Proper the crossing point.
func IntersectSegments(a, b, c, d r2.Point, eps float64) (Intersection, []r2.Point) {
	d1, d2 := sideOf(a, c, d), sideOf(b, c, d)
	if math.Abs(d1) <= eps && math.Abs(d2) <= eps {
		return collinear(a, b, c, d, eps)
	}

	d3, d4 := sideOf(c, a, b), sideOf(d, a, b)
	if Sign(d1, eps)*Sign(d2, eps) < 0 && Sign(d3, eps)*Sign(d4, eps) < 0 {
		r, s := b.Sub(a), d.Sub(c)
		t := c.Sub(a).Cross(s) / r.Cross(s)

		return Proper, []r2.Point{a.Add(r.Mul(t))}
	}

	var touches []r2.Point
	for _, t := range [...]struct{ p, s0, s1 r2.Point }{{a, c, d}, {b, c, d}, {c, a, b}, {d, a, b}} {
		if DistanceToSegment(t.p, t.s0, t.s1) <= eps {
			touches = AppendUnique(touches, t.p, eps)
		}
	}

	if len(touches) > 0 {
		return Touch, touches
	}

	return Disjoint, nil
}

func collinear(a, b, c, d r2.Point, eps float64) (Intersection, []r2.Point) {
	dir := b.Sub(a)
	if dir.Norm() == 0 {
		dir = d.Sub(c)
	}

	if dir.Norm() == 0 {
		if a.Sub(c).Norm() <= eps {
			return Touch, []r2.Point{a}
		}

		return Disjoint, nil
	}

	u := dir.Normalize()

	ta0, ta1 := 0.0, b.Sub(a).Dot(u)
	tc, td := c.Sub(a).Dot(u), d.Sub(a).Dot(u)

	lo := max(min(ta0, ta1), min(tc, td))
	hi := min(max(ta0, ta1), max(tc, td))

	switch {
	case hi-lo > eps:
		return Overlap, []r2.Point{a.Add(u.Mul(lo)), a.Add(u.Mul(hi))}
	case hi-lo >= -eps:
		return Touch, []r2.Point{a.Add(u.Mul((lo + hi) / 2))}
	default:
		return Disjoint, nil
	}
}

// AppendUnique appends p unless a point within eps is already present.
func AppendUnique(pts []r2.Point, p r2.Point, eps float64) []r2.Point {
	for _, q := range pts {
		if q.Sub(p).Norm() <= eps {
			return pts
		}
	}

	return append(pts, p)
}
