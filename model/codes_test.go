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

func TestCode_String(t *testing.T) {
	testCases := []struct {
		code     model.Code
		expected string
	}{
		{model.RingNotClosed, "RING_NOT_CLOSED"},
		{model.NonPlanarPolygonNormalsDeviation, "NON_PLANAR_POLYGON_NORMALS_DEVIATION"},
		{model.NotValid2Manifold, "NOT_VALID_2_MANIFOLD"},
		{model.BuildingPartsOverlap, "BUILDINGPARTS_OVERLAP"},
		{model.UnknownError, "UNKNOWN_ERROR"},
		{model.Code(308), "Code(308)"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.code.String())
		})
	}
}

func TestCode_IsInput(t *testing.T) {
	assert.True(t, model.InvalidInputFile.IsInput())
	assert.True(t, model.UnknownError.IsInput())
	assert.False(t, model.BuildingPartsOverlap.IsInput())
	assert.False(t, model.TooFewPoints.IsInput())
}
