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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/val3d/model"
)

func square(s *model.Surface, z float64) {
	s.AddPolygon("", []model.Point3{{Z: z}, {X: 1, Z: z}, {X: 1, Y: 1, Z: z}, {Z: z}})
}

func TestPrimitiveType_String(t *testing.T) {
	names := make([]string, 0)
	for _, typ := range model.PrimitiveTypes() {
		names = append(names, typ.String())
	}

	assert.Equal(t, []string{"Solid", "CompositeSolid", "MultiSolid", "CompositeSurface", "MultiSurface", "GeometryTemplate"}, names)
	assert.Equal(t, "PrimitiveType(42)", model.PrimitiveType(42).String())
}

func TestSolid_Shells(t *testing.T) {
	s := model.NewSolid("s")

	assert.Empty(t, s.Shells())

	ext := model.NewSurface(0.001)
	in1 := model.NewSurface(0.001)
	in2 := model.NewSurface(0.001)

	s.AddInterior(in1)
	s.SetExterior(ext)
	s.AddInterior(in2)

	assert.Equal(t, []*model.Surface{ext, in1, in2}, s.Shells())
	assert.Equal(t, 0, ext.ID)
	assert.Equal(t, 1, in1.ID)
	assert.Equal(t, 2, in2.ID)
}

func TestSolid_Findings(t *testing.T) {
	s := model.NewSolid("s")
	s.SetExterior(model.NewSurface(0.001))
	s.AddInterior(model.NewSurface(0.001))

	assert.True(t, s.IsValid())

	s.Interiors[0].Errors.Add(model.ShellNotClosed, "edge")
	s.Errors.Add(model.InnerShellOutside, "shell 1")

	assert.False(t, s.IsValid())
	assert.Equal(t, []model.Code{model.ShellNotClosed, model.InnerShellOutside}, s.UniqueErrorCodes())
	assert.Equal(t, []model.Finding{
		{Code: model.InnerShellOutside, Description: "INNER_SHELL_OUTSIDE", Info: "shell 1"},
		{Code: model.ShellNotClosed, Description: "SHELL_NOT_CLOSED", Info: "shell 1 | edge"},
	}, s.Findings())
}

func TestCompositeSolid_Findings(t *testing.T) {
	s0 := model.NewSolid("a")
	s1 := model.NewSolid("b")
	s1.Errors.Add(model.EmptyPrimitive, "no exterior shell")

	c := &model.CompositeSolid{ID: "c", Solids: []*model.Solid{s0, s1}}
	c.Errors.Add(model.DisconnectedSolids, "a and b")

	assert.False(t, c.IsValid())
	assert.Equal(t, []model.Code{model.DisconnectedSolids, model.EmptyPrimitive}, c.UniqueErrorCodes())
	assert.Equal(t, "solid 1 | no exterior shell", c.Findings()[1].Info)

	m := &model.MultiSolid{ID: "m", Solids: []*model.Solid{s0}}
	assert.True(t, m.IsValid())
	assert.Equal(t, model.MultiSolidType, m.Type())
}

func TestMultiSurface_Findings(t *testing.T) {
	s := model.NewSurface(0.001)
	square(s, 0)

	ms := &model.MultiSurface{ID: "ms", Surface: s}
	assert.True(t, ms.IsValid())

	s.Errors.Add(model.TooFewPoints, "face #0")

	assert.False(t, ms.IsValid())
	assert.Equal(t, []model.Code{model.TooFewPoints}, ms.UniqueErrorCodes())
	assert.Equal(t, "face #0", ms.Findings()[0].Info)

	cs := &model.CompositeSurface{ID: "cs"}
	assert.True(t, cs.IsValid())
	assert.Empty(t, cs.Findings())
}

func TestErrorsOf(t *testing.T) {
	prims := []model.Primitive{
		model.NewSolid("s"),
		&model.MultiSolid{},
		&model.CompositeSolid{},
		&model.MultiSurface{},
		&model.CompositeSurface{},
		model.NewGeometryInstance("i", model.NewTemplateRegistry(), 0),
	}

	for _, p := range prims {
		model.ErrorsOf(p).Add(model.UnknownError, "boom")

		assert.False(t, p.IsValid(), p.Type().String())
		assert.Contains(t, p.UniqueErrorCodes(), model.UnknownError)
	}
}

func TestSurface_Weld(t *testing.T) {
	s := model.NewSurface(0.001)

	square(s, 0)
	s.AddPolygon("top", []model.Point3{{Z: 1}, {X: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {Z: 1.0002}})

	assert.Equal(t, 6, s.NumPoints())
	assert.Equal(t, model.Ring{0, 1, 2, 0}, s.Faces[0].Rings[0])
	assert.Equal(t, model.Ring{3, 4, 5, 3}, s.Faces[1].Rings[0])
	assert.Equal(t, model.Ring{3, 5, 4, 3}, s.Faces[1].Rings[0].Reversed())

	assert.Equal(t, "#0", s.FaceLabel(0))
	assert.Equal(t, "top", s.FaceLabel(1))

	assert.Equal(t, model.Point3{X: 1, Y: 1, Z: 1}, s.BoundingBox().Max)
	assert.Equal(t, 0.001, s.Tolerance())

	assert.False(t, s.Checked())
	s.MarkChecked()
	assert.True(t, s.Checked())
}
