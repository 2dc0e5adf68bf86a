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

func TestIdentityTransform(t *testing.T) {
	p := model.Point3{X: 85012.3, Y: 446875.9, Z: 12}

	assert.Equal(t, p, model.IdentityTransform().Apply(p))
}

func TestTransform_Apply(t *testing.T) {
	tr := model.Transform{
		Scale:     model.Point3{X: 0.001, Y: 0.001, Z: 0.01},
		Translate: model.Point3{X: 100, Y: 200, Z: 5},
		Origin:    model.Point3{X: 100, Y: 200},
	}

	p := tr.Apply(model.Point3{X: 2000, Y: 500, Z: 300})

	assert.InDelta(t, 2.0, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
	assert.InDelta(t, 8.0, p.Z, 1e-9)
}

func TestTransform_Centered(t *testing.T) {
	tr := model.IdentityTransform()
	tr.Translate = model.Point3{X: 10, Z: 1}

	pts := []model.Point3{{X: 5, Y: 7, Z: 3}, {X: 2, Y: 9, Z: -4}, {X: 4, Y: 8, Z: 0}}

	c := tr.Centered(pts)

	assert.Equal(t, model.Point3{X: 12, Y: 7}, c.Origin)
	assert.Equal(t, model.Point3{X: 0, Y: 2, Z: -3}, c.Apply(pts[1]))
	assert.Equal(t, model.Point3{X: 3, Y: 0, Z: 4}, c.Apply(pts[0]))

	assert.Equal(t, tr, tr.Centered(nil))
}
