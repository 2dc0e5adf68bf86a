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

package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/r3"
)

// Point3 is a double-precision coordinate in 3D space.
type Point3 = r3.Vector

// Degrees is an angle expressed in decimal degrees.
type Degrees float64

// Epsilon is an enumeration of precisions that can be used when comparing
// coordinates.
type Epsilon float64

const (
	E3 Epsilon = 1e-3

	Half = 0.5
)

func (d Degrees) String() string {
	return ftoa(float64(d)) + "°"
}

// Round snaps a value to the grid of the epsilon.
func Round(val float64, eps Epsilon) float64 {
	if eps <= 0 {
		return val
	}

	if eps >= 1 {
		return math.Floor(val/float64(eps)+Half) * float64(eps)
	}

	scale := math.Round(1 / float64(eps))

	return math.Floor(val*scale+Half) / scale
}

// FormatPoint renders a point as "(x y z)" with the shortest exact decimal
// representation of each coordinate.
func FormatPoint(p Point3) string {
	return fmt.Sprintf("(%s %s %s)", ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
