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
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Contact classifies how two faces meet.
type Contact int

const (
	// NoContact means the faces are disjoint.
	NoContact Contact = iota
	// Touching faces meet only along their boundaries, or the boundary of
	// one lies on the other (see ContactResult.Interior).
	Touching
	// Overlapping faces are coplanar and share an area.
	Overlapping
	// Crossing faces pierce each other.
	Crossing
)

func (c Contact) String() string {
	switch c {
	case NoContact:
		return "NoContact"
	case Touching:
		return "Touching"
	case Overlapping:
		return "Overlapping"
	case Crossing:
		return "Crossing"
	default:
		return "Contact(?)"
	}
}

// ContactResult is the outcome of FaceContact.
type ContactResult struct {
	Kind Contact

	// Points are the contact points for Touching: isolated points and the
	// ends of shared stretches.
	Points []r3.Vector

	// Interior is set for Touching when the contact reaches the interior of
	// one of the faces.
	Interior bool

	// SameSide is set for Overlapping faces whose normals agree.
	SameSide bool
}

// FaceContact classifies the contact between two faces with tolerance eps.
func FaceContact(a, b *Polygon, eps float64) ContactResult {
	if !a.Box.Intersects(b.Box, eps) {
		return ContactResult{}
	}

	if coplanar(a, b, eps) {
		return coplanarContact(a, b, eps)
	}

	return transversalContact(a, b, eps)
}

func coplanar(a, b *Polygon, eps float64) bool {
	for _, pair := range [...][2]*Polygon{{a, b}, {b, a}} {
		plane := pair[0].Plane()
		for _, v := range pair[1].Vertices() {
			if math.Abs(plane.Distance(v)) > eps {
				return false
			}
		}
	}

	return true
}

func coplanarContact(a, b *Polygon, eps float64) ContactResult {
	var res ContactResult

	bRings := make([][]r2.Point, len(b.Rings))
	for i, ring := range b.Rings {
		bRings[i] = a.Frame.ProjectAll(ring)
	}

	var touches []r2.Point
	for _, ra := range a.Rings2D {
		for i, p := range ra {
			q := ra[(i+1)%len(ra)]

			for _, rb := range bRings {
				for j, c := range rb {
					d := rb[(j+1)%len(rb)]

					kind, pts := IntersectSegments(p, q, c, d, eps)
					switch kind {
					case Proper:
						return overlapping(res, a, b)
					case Touch, Overlap:
						for _, pt := range pts {
							touches = AppendUnique(touches, pt, eps)
						}
					case Disjoint:
					}
				}
			}
		}
	}

	for _, rb := range bRings {
		for _, v := range rb {
			if LocateInPolygon(v, a.Rings2D, eps) == Inside {
				return overlapping(res, a, b)
			}
		}
	}

	for _, ra := range a.Rings2D {
		for _, v := range ra {
			if LocateInPolygon(v, bRings, eps) == Inside {
				return overlapping(res, a, b)
			}
		}
	}

	if q, ok := InteriorPoint2D(a.Rings2D, eps); ok && LocateInPolygon(q, bRings, eps) == Inside {
		return overlapping(res, a, b)
	}

	if q, ok := InteriorPoint2D(bRings, eps); ok && LocateInPolygon(q, a.Rings2D, eps) == Inside {
		return overlapping(res, a, b)
	}

	if len(touches) == 0 {
		return res
	}

	res.Kind = Touching
	for _, t := range touches {
		res.Points = append(res.Points, a.Frame.Unproject(t))
	}

	return res
}

func overlapping(res ContactResult, a, b *Polygon) ContactResult {
	res.Kind = Overlapping
	res.SameSide = a.Normal().Dot(b.Normal()) > 0

	return res
}

// transversalContact handles faces on distinct planes. Every contact lies on
// the line where the planes meet; the points where either boundary reaches
// the other plane split that line into stretches of constant location, so
// the breakpoints and the middle of each stretch decide the contact.
func transversalContact(a, b *Polygon, eps float64) ContactResult {
	var breaks []r3.Vector

	collect := func(face, other *Polygon) {
		plane := other.Plane()
		face.Edges(func(p, q r3.Vector) {
			dp, dq := plane.Distance(p), plane.Distance(q)

			switch {
			case math.Abs(dp) <= eps:
				breaks = append(breaks, p)
			case math.Abs(dq) <= eps:
			case Sign(dp, eps)*Sign(dq, eps) < 0:
				breaks = append(breaks, p.Add(q.Sub(p).Mul(dp/(dp-dq))))
			}
		})
	}

	collect(a, b)
	collect(b, a)

	res := ContactResult{}
	if len(breaks) == 0 {
		return res
	}

	dir := a.Normal().Cross(b.Normal())
	if dir.Norm() == 0 {
		return res
	}

	slices.SortFunc(breaks, func(p, q r3.Vector) int {
		switch dp, dq := p.Dot(dir), q.Dot(dir); {
		case dp < dq:
			return -1
		case dp > dq:
			return 1
		default:
			return 0
		}
	})

	mark := func(p r3.Vector, point bool) {
		la, lb := a.Locate(p, eps), b.Locate(p, eps)

		switch {
		case la == Outside || lb == Outside:
		case la == Inside && lb == Inside:
			res.Kind = Crossing
		default:
			if res.Kind != Crossing {
				res.Kind = Touching
			}

			if la == Inside || lb == Inside {
				res.Interior = true
			}

			if point {
				res.Points = appendUnique3(res.Points, p, eps)
			}
		}
	}

	for i, p := range breaks {
		mark(p, true)
		if i+1 < len(breaks) && p.Distance(breaks[i+1]) > eps {
			mark(p.Add(breaks[i+1]).Mul(0.5), false)
		}
	}

	if res.Kind == Crossing {
		res.Points = nil
		res.Interior = false
	}

	return res
}

func appendUnique3(pts []r3.Vector, p r3.Vector, eps float64) []r3.Vector {
	for _, q := range pts {
		if q.Distance(p) <= eps {
			return pts
		}
	}

	return append(pts, p)
}
