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

// Package weld deduplicates coordinates within a snap tolerance.
package weld

import (
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r3"
)

const (
	dimensions  = 3
	minChildren = 25
	maxChildren = 50

	// pad keeps every indexed rectangle strictly positive in size; the
	// R-tree does not report rectangles that merely touch.
	pad = 1e-9
)

type vertex struct {
	index int
	rect  rtreego.Rect
}

func (v vertex) Bounds() rtreego.Rect {
	return v.rect
}

// Pool stores points and welds any point closer than the tolerance to an
// already stored point onto that point's index.
type Pool struct {
	tol    float64
	points []r3.Vector
	tree   *rtreego.Rtree
}

// NewPool creates an empty pool welding within tol. A negative tolerance is
// treated as zero, in which case only identical coordinates are welded.
func NewPool(tol float64) *Pool {
	return &Pool{
		tol:  max(tol, 0),
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// Tolerance returns the snap tolerance of the pool.
func (p *Pool) Tolerance() float64 {
	return p.tol
}

// Add returns the index of the stored point nearest to v when it lies within
// the tolerance, otherwise v is appended and its new index returned.
func (p *Pool) Add(v r3.Vector) int {
	if i, ok := p.Find(v, p.tol); ok {
		return i
	}

	i := len(p.points)
	p.points = append(p.points, v)
	p.tree.Insert(vertex{index: i, rect: toPoint(v).ToRect(pad)})

	return i
}

// Find returns the index of the stored point nearest to v within tol. Ties
// go to the lowest index.
func (p *Pool) Find(v r3.Vector, tol float64) (int, bool) {
	best, bestDist := -1, 0.0

	for _, s := range p.tree.SearchIntersect(toPoint(v).ToRect(max(tol, 0) + pad)) {
		i := s.(vertex).index

		d := p.points[i].Distance(v)
		if d > tol {
			continue
		}

		if best < 0 || d < bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
	}

	return best, best >= 0
}

// Len returns the number of stored points.
func (p *Pool) Len() int {
	return len(p.points)
}

// Point returns the stored point at index i.
func (p *Pool) Point(i int) r3.Vector {
	return p.points[i]
}

// Points returns the stored points in index order. The slice must not be
// modified.
func (p *Pool) Points() []r3.Vector {
	return p.points
}

func toPoint(v r3.Vector) rtreego.Point {
	return rtreego.Point{v.X, v.Y, v.Z}
}
