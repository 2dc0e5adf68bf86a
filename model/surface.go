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
	"slices"
	"strconv"

	"m4o.io/val3d/internal/weld"
)

// StandaloneShell is the id of a surface that is not part of a solid.
const StandaloneShell = -1

// Ring is an ordered list of indices into the point pool of a Surface.
type Ring []int

// Reversed returns a copy of the ring traversed the other way.
func (r Ring) Reversed() Ring {
	out := slices.Clone(r)
	slices.Reverse(out)

	return out
}

// Face is one outer ring followed by zero or more inner rings. Reversed asks
// for the ring order to be flipped before the face is checked.
type Face struct {
	ID       string
	Rings    []Ring
	Reversed bool
}

// Surface owns a point pool and a set of faces. It is the unit validated as
// a shell of a solid or as the geometry of a multi or composite surface.
type Surface struct {
	// ID is 0 for the exterior shell of a solid, 1..n for its interior shells
	// and StandaloneShell otherwise.
	ID     int
	Faces  []Face
	Errors Errors

	pool    *weld.Pool
	checked bool
}

// NewSurface creates an empty surface welding its points within tolSnap.
func NewSurface(tolSnap float64) *Surface {
	return &Surface{
		ID:   StandaloneShell,
		pool: weld.NewPool(tolSnap),
	}
}

// AddPoint welds p into the point pool and returns its index.
func (s *Surface) AddPoint(p Point3) int {
	return s.pool.Add(p)
}

// AddFace appends a face and returns its index.
func (s *Surface) AddFace(f Face) int {
	s.Faces = append(s.Faces, f)

	return len(s.Faces) - 1
}

// AddPolygon welds the coordinates of each ring and appends the face. Rings
// are kept as given, including an explicit closing point.
func (s *Surface) AddPolygon(id string, rings ...[]Point3) int {
	f := Face{ID: id, Rings: make([]Ring, len(rings))}

	for i, coords := range rings {
		r := make(Ring, len(coords))
		for j, p := range coords {
			r[j] = s.AddPoint(p)
		}

		f.Rings[i] = r
	}

	return s.AddFace(f)
}

// Point returns the pooled point at index i.
func (s *Surface) Point(i int) Point3 {
	return s.pool.Point(i)
}

// Points returns the pooled points in index order.
func (s *Surface) Points() []Point3 {
	return s.pool.Points()
}

// NumPoints returns the number of pooled points.
func (s *Surface) NumPoints() int {
	return s.pool.Len()
}

// Tolerance returns the snap tolerance of the point pool.
func (s *Surface) Tolerance() float64 {
	return s.pool.Tolerance()
}

// Find returns the index of the pooled point nearest to p within tol.
func (s *Surface) Find(p Point3, tol float64) (int, bool) {
	return s.pool.Find(p, tol)
}

// RingPoints resolves the indices of a ring to coordinates.
func (s *Surface) RingPoints(r Ring) []Point3 {
	pts := make([]Point3, len(r))
	for i, idx := range r {
		pts[i] = s.pool.Point(idx)
	}

	return pts
}

// FaceLabel returns the declared id of face i, or its position.
func (s *Surface) FaceLabel(i int) string {
	if id := s.Faces[i].ID; id != "" {
		return id
	}

	return "#" + strconv.Itoa(i)
}

// BoundingBox returns the box of the pooled points.
func (s *Surface) BoundingBox() *BoundingBox {
	b := InitialBoundingBox()
	for _, p := range s.pool.Points() {
		b.ExpandWithPoint(p)
	}

	return b
}

// Checked reports whether the surface already went through validation.
func (s *Surface) Checked() bool {
	return s.checked
}

// MarkChecked records that the surface went through validation.
func (s *Surface) MarkChecked() {
	s.checked = true
}

// IsValid checks if no finding was recorded on the surface.
func (s *Surface) IsValid() bool {
	return !s.Errors.HasErrors()
}

func (s *Surface) label() string {
	if s.ID == StandaloneShell {
		return "surface"
	}

	return "shell " + strconv.Itoa(s.ID)
}
