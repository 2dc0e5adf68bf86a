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

// Package geom holds the computational geometry predicates used by the
// validator: plane fitting, projection, segment and polygon predicates, face
// contact classification and point location in closed shells.
package geom

import (
	"golang.org/x/exp/constraints"
)

// MinTolerance is the smallest tolerance used by the predicates.
const MinTolerance = 1e-9

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Sign classifies v as -1, 0 or +1 with a dead zone of eps around zero.
func Sign[T constraints.Float](v, eps T) int {
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	default:
		return 0
	}
}

// Tolerance returns the largest of the candidates and MinTolerance.
func Tolerance[T constraints.Float](candidates ...T) T {
	tol := T(MinTolerance)
	for _, c := range candidates {
		tol = max(tol, c)
	}

	return tol
}
