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

package geom_test

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"

	"m4o.io/val3d/internal/geom"
)

func pt(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func TestIntersectSegments(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d r2.Point
		kind       geom.Intersection
		points     []r2.Point
	}{
		{"proper", pt(0, 0), pt(2, 2), pt(0, 2), pt(2, 0), geom.Proper, []r2.Point{pt(1, 1)}},
		{"t junction", pt(0, 0), pt(2, 0), pt(1, 0), pt(1, 1), geom.Touch, []r2.Point{pt(1, 0)}},
		{"shared endpoint", pt(0, 0), pt(1, 0), pt(1, 0), pt(1, 1), geom.Touch, []r2.Point{pt(1, 0)}},
		{"collinear overlap", pt(0, 0), pt(2, 0), pt(1, 0), pt(3, 0), geom.Overlap, []r2.Point{pt(1, 0), pt(2, 0)}},
		{"collinear touch", pt(0, 0), pt(1, 0), pt(1, 0), pt(2, 0), geom.Touch, []r2.Point{pt(1, 0)}},
		{"collinear apart", pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0), geom.Disjoint, nil},
		{"parallel", pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1), geom.Disjoint, nil},
		{"apart", pt(0, 0), pt(1, 1), pt(3, 0), pt(2, 5), geom.Disjoint, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, points := geom.IntersectSegments(tt.a, tt.b, tt.c, tt.d, 1e-9)

			assert.Equal(t, tt.kind, kind)
			assert.Len(t, points, len(tt.points))
			for i := range tt.points {
				assert.InDelta(t, tt.points[i].X, points[i].X, 1e-9)
				assert.InDelta(t, tt.points[i].Y, points[i].Y, 1e-9)
			}
		})
	}
}

func TestDistanceToSegment(t *testing.T) {
	assert.InDelta(t, 1.0, geom.DistanceToSegment(pt(1, 1), pt(0, 0), pt(2, 0)), 1e-12)
	assert.InDelta(t, 5.0, geom.DistanceToSegment(pt(5, 4), pt(0, 0), pt(2, 0)), 1e-12)
	assert.InDelta(t, 5.0, geom.DistanceToSegment(pt(3, 4), pt(0, 0), pt(0, 0)), 1e-12)
}

func TestLocateInPolygon(t *testing.T) {
	outer := []r2.Point{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	hole := []r2.Point{pt(4, 4), pt(4, 6), pt(6, 6), pt(6, 4)}

	tests := []struct {
		name string
		p    r2.Point
		want geom.Location
	}{
		{"inside", pt(2, 2), geom.Inside},
		{"in hole", pt(5, 5), geom.Outside},
		{"hole boundary", pt(4, 5), geom.OnBoundary},
		{"outer boundary", pt(10, 5), geom.OnBoundary},
		{"vertex", pt(0, 0), geom.OnBoundary},
		{"outside", pt(11, 5), geom.Outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geom.LocateInPolygon(tt.p, [][]r2.Point{outer, hole}, 1e-9))
		})
	}

	assert.Equal(t, geom.Inside, geom.LocateInRing(pt(5, 5), outer, 1e-9))
}

func TestInteriorPoint2D(t *testing.T) {
	outer := []r2.Point{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	hole := []r2.Point{pt(1, 1), pt(1, 9), pt(9, 9), pt(9, 1)}
	rings := [][]r2.Point{outer, hole}

	p, ok := geom.InteriorPoint2D(rings, 1e-9)
	assert.True(t, ok)
	assert.Equal(t, geom.Inside, geom.LocateInPolygon(p, rings, 1e-9))

	l := []r2.Point{pt(0, 0), pt(4, 0), pt(4, 1), pt(1, 1), pt(1, 4), pt(0, 4)}
	p, ok = geom.InteriorPoint2D([][]r2.Point{l}, 1e-9)
	assert.True(t, ok)
	assert.Equal(t, geom.Inside, geom.LocateInRing(p, l, 1e-9))
}
