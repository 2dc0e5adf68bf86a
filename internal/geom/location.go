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

package geom

import (
	"github.com/golang/geo/r2"
)

// Location of a point relative to a ring, polygon or shell.
type Location int

const (
	Outside Location = iota
	OnBoundary
	Inside
)

func (l Location) String() string {
	switch l {
	case Outside:
		return "Outside"
	case OnBoundary:
		return "OnBoundary"
	case Inside:
		return "Inside"
	default:
		return "Location(?)"
	}
}

// LocateInRing locates p relative to a ring given without its closing point,
// by ray crossing. Points within eps of an edge are on the boundary.
func LocateInRing(p r2.Point, ring []r2.Point, eps float64) Location {
	n := len(ring)
	if n == 0 {
		return Outside
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]

		if DistanceToSegment(p, a, b) <= eps {
			return OnBoundary
		}

		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}

	if inside {
		return Inside
	}

	return Outside
}

// LocateInPolygon locates p relative to an outer ring minus inner rings.
func LocateInPolygon(p r2.Point, rings [][]r2.Point, eps float64) Location {
	if len(rings) == 0 {
		return Outside
	}

	loc := LocateInRing(p, rings[0], eps)
	if loc != Inside {
		return loc
	}

	for _, hole := range rings[1:] {
		switch LocateInRing(p, hole, eps) {
		case Inside:
			return Outside
		case OnBoundary:
			return OnBoundary
		case Outside:
		}
	}

	return Inside
}
