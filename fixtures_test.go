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

package val3d_test

import (
	"m4o.io/val3d/model"
)

const snap = 0.001

var cubeFaces = [][]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

// cubeShell is an outward oriented cube; the first skip faces are left out.
func cubeShell(origin model.Point3, size float64, skip int) *model.Surface {
	unit := []model.Point3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}

	s := model.NewSurface(snap)
	for _, f := range cubeFaces[skip:] {
		ring := make([]model.Point3, 0, len(f)+1)
		for _, idx := range f {
			ring = append(ring, origin.Add(unit[idx].Mul(size)))
		}

		s.AddPolygon("", append(ring, ring[0]))
	}

	return s
}

func cube(id string, origin model.Point3, skip int) *model.Solid {
	sol := model.NewSolid(id)
	sol.SetExterior(cubeShell(origin, 1, skip))

	return sol
}

func building(id string, p model.Primitive) *model.Feature {
	f := model.NewFeature(id, "Building")
	f.AddPrimitive(p)

	return f
}

// dangling is a solid whose only face refers to points that were never
// pooled.
func dangling(id string) *model.Solid {
	s := model.NewSurface(snap)
	s.AddFace(model.Face{Rings: []model.Ring{{0, 1, 2, 0}}})

	sol := model.NewSolid(id)
	sol.SetExterior(s)

	return sol
}

// sampleDataset holds one valid building, one with an open shell and a
// bridge instancing a template that does not exist.
func sampleDataset() *model.Dataset {
	ds := model.NewDataset()
	ds.InputFile = "sample.json"
	ds.InputType = "GeometryDump"

	ds.AddFeature(building("b1", cube("s1", model.Point3{}, 0)))
	ds.AddFeature(building("b2", cube("s2", model.Point3{X: 5}, 1)))

	bridge := model.NewFeature("br1", "Bridge")
	bridge.AddPrimitive(model.NewGeometryInstance("i1", ds.Templates, 3))
	ds.AddFeature(bridge)

	return ds
}
