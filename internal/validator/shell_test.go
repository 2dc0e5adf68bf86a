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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/val3d/model"
)

func TestValidateShell_Cube(t *testing.T) {
	sol := cubeSolid(pt(0, 0, 0), 1)

	assert.True(t, engine().ValidatePrimitive(sol))
	assert.Empty(t, sol.UniqueErrorCodes())
	assert.Empty(t, sol.Findings())
}

// cubeWith builds a solid whose exterior is a unit cube modified by mod.
func cubeWith(mod func(s *model.Surface)) *model.Solid {
	s := cubeSurface(pt(0, 0, 0), 1, false)
	mod(s)

	sol := model.NewSolid("cube")
	sol.SetExterior(s)

	return sol
}

func TestValidateShell(t *testing.T) {
	tests := []struct {
		name  string
		solid *model.Solid
		codes []model.Code
	}{
		{
			"missing face",
			cubeWith(func(s *model.Surface) { s.Faces = slices.Delete(s.Faces, topFace, topFace+1) }),
			[]model.Code{model.ShellNotClosed},
		},
		{
			"duplicated face",
			cubeWith(func(s *model.Surface) { s.AddFace(s.Faces[topFace]) }),
			[]model.Code{model.NonManifoldEdge},
		},
		{
			"one face flipped",
			cubeWith(func(s *model.Surface) { s.Faces[topFace].Reversed = true }),
			[]model.Code{model.NotValid2Manifold},
		},
		{
			"all faces flipped",
			cubeWith(func(s *model.Surface) {
				for i := range s.Faces {
					s.Faces[i].Reversed = true
				}
			}),
			[]model.Code{model.PolygonWrongOrientation},
		},
		{
			"unused vertex",
			cubeWith(func(s *model.Surface) { s.AddPoint(pt(5, 5, 5)) }),
			[]model.Code{model.VerticesNotUsed},
		},
		{
			"too few faces",
			cubeWith(func(s *model.Surface) { s.Faces = s.Faces[:3] }),
			[]model.Code{model.TooFewPolygons},
		},
		{
			"two cubes",
			cubeWith(func(s *model.Surface) { addCube(s, pt(3, 0, 0), 1, false) }),
			[]model.Code{model.SeparateParts},
		},
		{
			"invalid face",
			cubeWith(func(s *model.Surface) { s.AddPolygon("bad", []model.Point3{pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0)}) }),
			[]model.Code{model.RingNotClosed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, engine().ValidatePrimitive(tt.solid))
			assert.Equal(t, tt.codes, tt.solid.UniqueErrorCodes())
		})
	}
}

func TestValidateShell_NonManifoldVertex(t *testing.T) {
	sol := cubeWith(func(s *model.Surface) { addCube(s, pt(1, 1, 1), 1, false) })

	assert.False(t, engine().ValidatePrimitive(sol))
	assert.Contains(t, sol.UniqueErrorCodes(), model.NonManifoldVertex)
}

// dentedCube is a unit cube whose top is replaced by a pyramid pointing
// down through the bottom face.
func dentedCube() *model.Solid {
	s := model.NewSurface(snap)
	pts := cubePoints(pt(0, 0, 0), 1)
	apex := pt(0.5, 0.5, -0.5)

	for i, f := range cubeFaces {
		if i == topFace {
			continue
		}

		s.AddPolygon("", closed(pts[f[0]], pts[f[1]], pts[f[2]], pts[f[3]]))
	}

	top := cubeFaces[topFace]
	for i := range top {
		s.AddPolygon("", closed(pts[top[i]], pts[top[(i+1)%len(top)]], apex))
	}

	sol := model.NewSolid("dented")
	sol.SetExterior(s)

	return sol
}

func TestValidateShell_SelfIntersection(t *testing.T) {
	sol := dentedCube()
	assert.False(t, engine(withOverlap(0)).ValidatePrimitive(sol))
	assert.Equal(t, []model.Code{model.ShellSelfIntersection}, sol.UniqueErrorCodes())

	disabled := dentedCube()
	assert.True(t, engine().ValidatePrimitive(disabled))
}

func TestValidateShell_SelfIntersectionCubeIsValid(t *testing.T) {
	sol := cubeSolid(pt(2, 3, 4), 2)
	assert.True(t, engine(withOverlap(0)).ValidatePrimitive(sol))
}

func TestValidateShell_FindingsCarryContext(t *testing.T) {
	sol := cubeWith(func(s *model.Surface) { s.Faces = slices.Delete(s.Faces, topFace, topFace+1) })
	engine().ValidatePrimitive(sol)

	findings := sol.Findings()
	require.Len(t, findings, 4)
	for _, f := range findings {
		assert.Equal(t, model.ShellNotClosed, f.Code)
		assert.Equal(t, "SHELL_NOT_CLOSED", f.Description)
		assert.Contains(t, f.Info, "shell 0 | edge ")
	}
}

func TestValidateCompositeSurface(t *testing.T) {
	open := cubeSurface(pt(0, 0, 0), 1, false)
	open.Faces = slices.Delete(open.Faces, topFace, topFace+1)

	cs := &model.CompositeSurface{ID: "open box", Surface: open}
	assert.True(t, engine().ValidatePrimitive(cs))

	apart := model.NewSurface(snap)
	apart.AddPolygon("a", square2(0, 0, 1, 1, true))
	apart.AddPolygon("b", square2(3, 0, 4, 1, true))

	cs = &model.CompositeSurface{ID: "apart", Surface: apart}
	assert.False(t, engine().ValidatePrimitive(cs))
	assert.Equal(t, []model.Code{model.SeparateParts}, cs.UniqueErrorCodes())
}

func TestValidateMultiSurface(t *testing.T) {
	ms := multiSurface(face(square2(0, 0, 1, 1, true)), face(square2(3, 0, 4, 1, false)))
	assert.True(t, engine().ValidatePrimitive(ms))

	empty := &model.MultiSurface{ID: "empty"}
	assert.False(t, engine().ValidatePrimitive(empty))
	assert.Equal(t, []model.Code{model.EmptyPrimitive}, empty.UniqueErrorCodes())
}
