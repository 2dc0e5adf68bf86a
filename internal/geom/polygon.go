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

	"m4o.io/val3d/model"
)

// Polygon is a planar face: an outer ring and zero or more inner rings,
// each given without its closing point, with a frame on the best-fit plane of
// the outer ring. The frame normal agrees with the winding of the outer ring.
type Polygon struct {
	Rings   [][]r3.Vector
	Rings2D [][]r2.Point
	Frame   Frame
	Box     *model.BoundingBox
}

// NewPolygon builds the polygon of the rings. It fails when the outer ring
// does not span a plane.
func NewPolygon(rings [][]r3.Vector) (*Polygon, bool) {
	if len(rings) == 0 {
		return nil, false
	}

	plane, ok := FitPlane(rings[0])
	if !ok {
		return nil, false
	}

	n := plane.Normal
	if NewellNormal(rings[0]).Dot(n) < 0 {
		n = n.Mul(-1)
	}

	p := &Polygon{
		Rings:   rings,
		Rings2D: make([][]r2.Point, len(rings)),
		Frame:   NewFrame(plane.Origin, n),
		Box:     model.InitialBoundingBox(),
	}

	for i, ring := range rings {
		p.Rings2D[i] = p.Frame.ProjectAll(ring)
		for _, v := range ring {
			p.Box.ExpandWithPoint(v)
		}
	}

	return p, true
}

// Normal returns the unit normal of the polygon.
func (p *Polygon) Normal() r3.Vector {
	return p.Frame.N
}

// Plane returns the best-fit plane of the outer ring.
func (p *Polygon) Plane() Plane {
	return p.Frame.Plane()
}

// AreaVector returns the normal scaled by the area; inner rings wound
// opposite to the outer ring are subtracted.
func (p *Polygon) AreaVector() r3.Vector {
	var n r3.Vector
	for _, ring := range p.Rings {
		n = n.Add(NewellNormal(ring))
	}

	return n.Mul(0.5)
}

// Vertices returns the vertices of every ring.
func (p *Polygon) Vertices() []r3.Vector {
	var out []r3.Vector
	for _, ring := range p.Rings {
		out = append(out, ring...)
	}

	return out
}

// Edges calls f for every ring edge.
func (p *Polygon) Edges(f func(a, b r3.Vector)) {
	for _, ring := range p.Rings {
		for i, a := range ring {
			f(a, ring[(i+1)%len(ring)])
		}
	}
}

// Locate locates q relative to the polygon: points farther than eps from
// the plane are outside.
func (p *Polygon) Locate(q r3.Vector, eps float64) Location {
	if math.Abs(p.Plane().Distance(q)) > eps {
		return Outside
	}

	return p.Locate2D(p.Frame.Project(q), eps)
}

// Locate2D locates a point given in the polygon frame.
func (p *Polygon) Locate2D(q r2.Point, eps float64) Location {
	return LocateInPolygon(q, p.Rings2D, eps)
}

// InteriorPoint returns a point strictly inside the polygon.
func (p *Polygon) InteriorPoint(eps float64) (r3.Vector, bool) {
	q, ok := InteriorPoint2D(p.Rings2D, eps)
	if !ok {
		return r3.Vector{}, false
	}

	return p.Frame.Unproject(q), true
}

var scanFractions = [...]float64{0.5, 0.25, 0.75, 0.125, 0.375, 0.625, 0.875, 0.3183, 0.6931}

// InteriorPoint2D finds a point strictly inside the region bounded by the
// rings (outer first) by scanning horizontal lines and taking the middle of
// the widest inside span.
func InteriorPoint2D(rings [][]r2.Point, eps float64) (r2.Point, bool) {
	if len(rings) == 0 || len(rings[0]) == 0 {
		return r2.Point{}, false
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range rings[0] {
		lo, hi = min(lo, v.Y), max(hi, v.Y)
	}

	var xs []float64
	for _, f := range scanFractions {
		y := lo + (hi-lo)*f

		xs = xs[:0]
		for _, ring := range rings {
			for i, a := range ring {
				b := ring[(i+1)%len(ring)]
				if (a.Y > y) != (b.Y > y) {
					xs = append(xs, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
				}
			}
		}

		slices.Sort(xs)

		width := 0.0
		var candidate r2.Point
		for i := 0; i+1 < len(xs); i += 2 {
			if w := xs[i+1] - xs[i]; w > width {
				width = w
				candidate = r2.Point{X: (xs[i] + xs[i+1]) / 2, Y: y}
			}
		}

		if width > 2*eps && LocateInPolygon(candidate, rings, eps) == Inside {
			return candidate, true
		}
	}

	return r2.Point{}, false
}
