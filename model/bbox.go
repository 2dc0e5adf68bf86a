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
)

// BoundingBox is an axis aligned box in 3D space.
type BoundingBox struct {
	Min Point3
	Max Point3
}

// InitialBoundingBox creates a BoundingBox that is meant to be expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Min: Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// IsEmpty checks if the bounding box has not been expanded with any point.
func (b *BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Intersects checks if two bounding boxes overlap once each is grown by eps.
func (b *BoundingBox) Intersects(o *BoundingBox, eps float64) bool {
	return b.Min.X-eps <= o.Max.X && o.Min.X-eps <= b.Max.X &&
		b.Min.Y-eps <= o.Max.Y && o.Min.Y-eps <= b.Max.Y &&
		b.Min.Z-eps <= o.Max.Z && o.Min.Z-eps <= b.Max.Z
}

// Diagonal returns the length of the box diagonal, zero for an empty box.
func (b *BoundingBox) Diagonal() float64 {
	if b.IsEmpty() {
		return 0
	}

	return b.Min.Distance(b.Max)
}

func (b *BoundingBox) ExpandWithPoint(p Point3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

func (b *BoundingBox) ExpandWithBoundingBox(bbox *BoundingBox) {
	if bbox.IsEmpty() {
		return
	}

	b.ExpandWithPoint(bbox.Min)
	b.ExpandWithPoint(bbox.Max)
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%s %s]", FormatPoint(b.Min), FormatPoint(b.Max))
}
