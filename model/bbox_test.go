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

func unitBox() *model.BoundingBox {
	return &model.BoundingBox{Max: model.Point3{X: 1, Y: 1, Z: 1}}
}

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()

	assert.True(t, initial.IsEmpty())
	assert.Equal(t, 0.0, initial.Diagonal())
}

func TestBoundingBox_Intersects(t *testing.T) {
	b := unitBox()

	touching := &model.BoundingBox{Min: model.Point3{X: 1}, Max: model.Point3{X: 2, Y: 1, Z: 1}}
	apart := &model.BoundingBox{Min: model.Point3{X: 1.01}, Max: model.Point3{X: 2, Y: 1, Z: 1}}

	assert.True(t, b.Intersects(touching, 0))
	assert.False(t, b.Intersects(apart, 0))
	assert.True(t, b.Intersects(apart, 0.1))
	assert.True(t, apart.Intersects(b, 0.1))
}

func TestBoundingBox_ExpandWithPoint(t *testing.T) {
	b := model.InitialBoundingBox()
	b.ExpandWithPoint(model.Point3{X: 1, Y: -2, Z: 3})

	assert.False(t, b.IsEmpty())
	assert.Equal(t, b.Min, b.Max)

	b.ExpandWithPoint(model.Point3{X: -1, Y: 2, Z: 0})

	assert.Equal(t, model.Point3{X: -1, Y: -2, Z: 0}, b.Min)
	assert.Equal(t, model.Point3{X: 1, Y: 2, Z: 3}, b.Max)
}

func TestBoundingBox_ExpandWithBoundingBox(t *testing.T) {
	b := unitBox()

	b.ExpandWithBoundingBox(model.InitialBoundingBox())
	assert.Equal(t, unitBox(), b)

	b.ExpandWithBoundingBox(&model.BoundingBox{Min: model.Point3{X: -1}, Max: model.Point3{Z: 2}})
	assert.Equal(t, model.Point3{X: -1}, b.Min)
	assert.Equal(t, model.Point3{X: 1, Y: 1, Z: 2}, b.Max)
	assert.InDelta(t, 3.0, b.Diagonal(), 1e-12)
}

func TestBoundingBox_String(t *testing.T) {
	assert.Equal(t, "[(0 0 0) (1 1 1)]", unitBox().String())
}
