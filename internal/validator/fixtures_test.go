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

package validator_test

import (
	"slices"

	"m4o.io/val3d/internal/validator"
	"m4o.io/val3d/model"
)

const snap = 0.001

func pt(x, y, z float64) model.Point3 {
	return model.Point3{X: x, Y: y, Z: z}
}

// closed repeats the first point at the end.
func closed(pts ...model.Point3) []model.Point3 {
	return append(slices.Clone(pts), pts[0])
}

func engine(mods ...func(*validator.Tolerances)) *validator.Engine {
	tol := validator.DefaultTolerances()
	for _, m := range mods {
		m(&tol)
	}

	return validator.New(tol, nil)
}

func withOverlap(v float64) func(*validator.Tolerances) {
	return func(t *validator.Tolerances) { t.Overlap = v }
}

var cubeFaces = [][]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

const topFace = 1

func cubePoints(origin model.Point3, size float64) []model.Point3 {
	unit := []model.Point3{
		pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0), pt(0, 1, 0),
		pt(0, 0, 1), pt(1, 0, 1), pt(1, 1, 1), pt(0, 1, 1),
	}

	out := make([]model.Point3, len(unit))
	for i, u := range unit {
		out[i] = origin.Add(u.Mul(size))
	}

	return out
}

// addCube adds the six faces of a cube to s, oriented outward unless
// inward is set.
func addCube(s *model.Surface, origin model.Point3, size float64, inward bool) {
	pts := cubePoints(origin, size)

	for _, f := range cubeFaces {
		ring := make([]model.Point3, len(f))
		for j, idx := range f {
			ring[j] = pts[idx]
		}

		if inward {
			slices.Reverse(ring)
		}

		s.AddPolygon("", closed(ring...))
	}
}

func cubeSurface(origin model.Point3, size float64, inward bool) *model.Surface {
	s := model.NewSurface(snap)
	addCube(s, origin, size, inward)

	return s
}

func cubeSolid(origin model.Point3, size float64) *model.Solid {
	sol := model.NewSolid("cube")
	sol.SetExterior(cubeSurface(origin, size, false))

	return sol
}

// solidWithCavity is a cube of side 10 at the origin with one cube shaped
// cavity.
func solidWithCavity(origin model.Point3, size float64) *model.Solid {
	sol := cubeSolid(pt(0, 0, 0), 10)
	sol.AddInterior(cubeSurface(origin, size, true))

	return sol
}

func multiSurface(faces ...[][]model.Point3) *model.MultiSurface {
	s := model.NewSurface(snap)
	for _, rings := range faces {
		s.AddPolygon("", rings...)
	}

	return &model.MultiSurface{ID: "ms", Surface: s}
}

func face(rings ...[]model.Point3) [][]model.Point3 {
	return rings
}
