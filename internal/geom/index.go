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
	"slices"

	"github.com/dhconnelly/rtreego"

	"m4o.io/val3d/model"
)

type indexed struct {
	i    int
	rect rtreego.Rect
}

func (x indexed) Bounds() rtreego.Rect {
	return x.rect
}

// BoxIndex answers which boxes of a fixed set overlap a query box.
type BoxIndex struct {
	tree *rtreego.Rtree
	pad  float64
}

// NewBoxIndex indexes the boxes; each box is grown by pad, so boxes closer
// than pad count as overlapping.
func NewBoxIndex(boxes []*model.BoundingBox, pad float64) *BoxIndex {
	idx := &BoxIndex{
		tree: rtreego.NewTree(3, 25, 50),
		pad:  max(pad, MinTolerance),
	}

	for i, b := range boxes {
		if b.IsEmpty() {
			continue
		}

		idx.tree.Insert(indexed{i: i, rect: idx.rect(b)})
	}

	return idx
}

// Search returns the indices of the boxes overlapping b, in increasing order.
func (x *BoxIndex) Search(b *model.BoundingBox) []int {
	if b.IsEmpty() {
		return nil
	}

	found := x.tree.SearchIntersect(x.rect(b))

	out := make([]int, len(found))
	for i, s := range found {
		out[i] = s.(indexed).i
	}

	slices.Sort(out)

	return out
}

func (x *BoxIndex) rect(b *model.BoundingBox) rtreego.Rect {
	lo := rtreego.Point{b.Min.X - x.pad, b.Min.Y - x.pad, b.Min.Z - x.pad}
	hi := rtreego.Point{b.Max.X + x.pad, b.Max.Y + x.pad, b.Max.Z + x.pad}

	// both points have three dimensions
	r, _ := rtreego.NewRectFromPoints(lo, hi)

	return r
}
