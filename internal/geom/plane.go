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
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Plane is a point on the plane and its unit normal.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
}

// Distance returns the signed distance of q to the plane.
func (p Plane) Distance(q r3.Vector) float64 {
	return q.Sub(p.Origin).Dot(p.Normal)
}

// Centroid returns the mean of the points.
func Centroid(pts []r3.Vector) r3.Vector {
	var c r3.Vector
	if len(pts) == 0 {
		return c
	}

	for _, p := range pts {
		c = c.Add(p)
	}

	return c.Mul(1 / float64(len(pts)))
}

// FitPlane returns the least-squares plane through the points: it passes
// through their centroid and its normal is the eigenvector of the covariance
// matrix with the smallest eigenvalue. The normal sign is arbitrary.
func FitPlane(pts []r3.Vector) (Plane, bool) {
	if len(pts) < 3 {
		return Plane{}, false
	}

	c := Centroid(pts)

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range pts {
		d := p.Sub(c)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}

	cov := mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return Plane{}, false
	}

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// eigenvalues are in ascending order
	n := r3.Vector{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}
	if n.Norm() == 0 {
		return Plane{}, false
	}

	return Plane{Origin: c, Normal: n.Normalize()}, true
}

// NewellNormal returns twice the vector area of a closed ring given without
// its closing point. It points to the side from which the ring is seen
// counter-clockwise, and is zero for a collinear ring.
func NewellNormal(pts []r3.Vector) r3.Vector {
	var n r3.Vector

	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}

	return n
}

// Frame is an orthonormal basis whose first two axes span a plane; it maps
// points on that plane to 2D and back. A ring seen counter-clockwise from N
// is counter-clockwise in 2D.
type Frame struct {
	Origin r3.Vector
	U      r3.Vector
	V      r3.Vector
	N      r3.Vector
}

// NewFrame builds a frame on the plane through origin with the given normal.
func NewFrame(origin, normal r3.Vector) Frame {
	n := normal.Normalize()
	u := n.Ortho()

	return Frame{Origin: origin, U: u, V: n.Cross(u), N: n}
}

// Plane returns the plane of the frame.
func (f Frame) Plane() Plane {
	return Plane{Origin: f.Origin, Normal: f.N}
}

// Project maps p onto the plane coordinates of the frame.
func (f Frame) Project(p r3.Vector) r2.Point {
	d := p.Sub(f.Origin)

	return r2.Point{X: d.Dot(f.U), Y: d.Dot(f.V)}
}

// ProjectAll maps every point.
func (f Frame) ProjectAll(pts []r3.Vector) []r2.Point {
	out := make([]r2.Point, len(pts))
	for i, p := range pts {
		out[i] = f.Project(p)
	}

	return out
}

// Unproject maps plane coordinates back to 3D.
func (f Frame) Unproject(q r2.Point) r3.Vector {
	return f.Origin.Add(f.U.Mul(q.X)).Add(f.V.Mul(q.Y))
}
