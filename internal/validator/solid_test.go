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
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/val3d/model"
)

func TestValidateSolid(t *testing.T) {
	tests := []struct {
		name  string
		solid func() *model.Solid
		codes []model.Code
	}{
		{"cavity inside", func() *model.Solid { return solidWithCavity(pt(2, 2, 2), 2) }, nil},
		{"cavity far outside", func() *model.Solid { return solidWithCavity(pt(20, 20, 20), 2) }, []model.Code{model.InnerShellOutside}},
		{
			"cavity oriented outward",
			func() *model.Solid {
				sol := cubeSolid(pt(0, 0, 0), 10)
				sol.AddInterior(cubeSurface(pt(2, 2, 2), 2, false))

				return sol
			},
			[]model.Code{model.WrongOrientationShell},
		},
		{
			"duplicated cavities",
			func() *model.Solid {
				sol := solidWithCavity(pt(2, 2, 2), 2)
				sol.AddInterior(cubeSurface(pt(2, 2, 2), 2, true))

				return sol
			},
			[]model.Code{model.DuplicatedShells},
		},
		{
			"intersecting cavities",
			func() *model.Solid {
				sol := solidWithCavity(pt(2, 2, 2), 3)
				sol.AddInterior(cubeSurface(pt(4, 4, 4), 3, true))

				return sol
			},
			[]model.Code{model.IntersectionShells},
		},
		{"cavity against the exterior", func() *model.Solid { return solidWithCavity(pt(0, 2, 2), 2) }, []model.Code{model.InteriorDisconnected}},
		{"no exterior", func() *model.Solid { return model.NewSolid("empty") }, []model.Code{model.EmptyPrimitive}},
		{
			"invalid cavity",
			func() *model.Solid {
				sol := cubeSolid(pt(0, 0, 0), 10)
				cavity := cubeSurface(pt(2, 2, 2), 2, true)
				cavity.Faces = cavity.Faces[1:]
				sol.AddInterior(cavity)

				return sol
			},
			[]model.Code{model.ShellNotClosed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := tt.solid()

			assert.Equal(t, tt.codes == nil, engine().ValidatePrimitive(sol))
			if tt.codes == nil {
				assert.Empty(t, sol.UniqueErrorCodes())
			} else {
				assert.Equal(t, tt.codes, sol.UniqueErrorCodes())
			}
		})
	}
}

func TestValidateSolid_CavityCrossingExterior(t *testing.T) {
	sol := solidWithCavity(pt(9, 2, 2), 2)

	assert.False(t, engine().ValidatePrimitive(sol))
	assert.Contains(t, sol.UniqueErrorCodes(), model.InnerShellOutside)
}

func TestValidateSolid_CavityFindingsNameTheShell(t *testing.T) {
	sol := cubeSolid(pt(0, 0, 0), 10)
	cavity := cubeSurface(pt(2, 2, 2), 2, true)
	cavity.AddPoint(pt(3, 3, 3))
	sol.AddInterior(cavity)

	engine().ValidatePrimitive(sol)

	findings := sol.Findings()
	if assert.Len(t, findings, 1) {
		assert.Equal(t, model.VerticesNotUsed, findings[0].Code)
		assert.Equal(t, "shell 1 | vertex (3 3 3)", findings[0].Info)
	}
}
