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

package validator

import (
	"fmt"

	"m4o.io/val3d/internal/geom"
	"m4o.io/val3d/model"
)

// validateSolids checks the member solids of a MultiSolid or, when composite
// is set, a CompositeSolid, whose members must also form one connected
// region.
func (e *Engine) validateSolids(errs *model.Errors, solids []*model.Solid, composite bool) ([]*solidGeometry, bool) {
	if errs.HasErrors() {
		return nil, false
	}

	if len(solids) == 0 {
		(&model.InputError{Code: model.EmptyPrimitive, Info: "no solids", Err: model.ErrEmptyGeometry}).Record(errs)

		return nil, false
	}

	geoms := make([]*solidGeometry, len(solids))

	ok := true
	for i, s := range solids {
		var sok bool

		geoms[i], sok = e.validateSolid(s)
		ok = ok && sok
	}

	if !ok {
		return nil, false
	}

	duplicate := make(map[[2]int]bool)
	for i := range solids {
		for j := i + 1; j < len(solids); j++ {
			if sameShell(solids[i].Exterior, solids[j].Exterior, e.eps) {
				errs.Add(model.DuplicatedSolids, fmt.Sprintf("solids %d and %d", i, j))

				duplicate[[2]int{i, j}] = true
				ok = false
			}
		}
	}

	for i := range geoms {
		for j := i + 1; j < len(geoms); j++ {
			if !duplicate[[2]int{i, j}] && solidsOverlap(geoms[i], geoms[j], e.contactEps) {
				errs.Add(model.IntersectionSolids, fmt.Sprintf("solids %d and %d", i, j))

				ok = false
			}
		}
	}

	if !ok {
		return nil, false
	}

	if composite {
		adjacent := newGraph(sequence(len(geoms)))
		for i := range geoms {
			for j := i + 1; j < len(geoms); j++ {
				if solidsAdjacent(geoms[i], geoms[j], e.contactEps) {
					join(adjacent, i, j)
				}
			}
		}

		if n := components(adjacent); n > 1 {
			errs.Add(model.DisconnectedSolids, fmt.Sprintf("%d disconnected groups", n))

			return nil, false
		}
	}

	return geoms, true
}

// solidsOverlap checks that two valid solids share volume: faces piercing
// each other, coplanar faces with the material on the same side, or a point
// of one strictly inside the other.
func solidsOverlap(a, b *solidGeometry, eps float64) bool {
	if !a.box().Intersects(b.box(), eps) {
		return false
	}

	overlap := false
	for _, sa := range a.shells() {
		for _, sb := range b.shells() {
			forEachFacePair(sa, sb, eps, func(pa, pb *geom.Polygon) bool {
				c := geom.FaceContact(pa, pb, eps)
				overlap = c.Kind == geom.Crossing || (c.Kind == geom.Overlapping && c.SameSide)

				return !overlap
			})

			if overlap {
				return true
			}
		}
	}

	return pointInside(a, b, eps) || pointInside(b, a, eps)
}

// pointInside checks whether a vertex or the interior point of a lies
// strictly inside the material of b.
func pointInside(a, b *solidGeometry, eps float64) bool {
	for _, v := range a.exterior.Vertices() {
		if b.locate(v, eps) == geom.Inside {
			return true
		}
	}

	if p, ok := a.exterior.InteriorPoint(eps); ok && a.locate(p, eps) == geom.Inside {
		return b.locate(p, eps) == geom.Inside
	}

	return false
}

// solidsAdjacent checks that two solids share part of a face or an edge.
func solidsAdjacent(a, b *solidGeometry, eps float64) bool {
	adjacent := false

	forEachFacePair(a.exterior, b.exterior, eps, func(pa, pb *geom.Polygon) bool {
		c := geom.FaceContact(pa, pb, eps)
		adjacent = c.Kind == geom.Overlapping || (c.Kind == geom.Touching && len(c.Points) > 1)

		return !adjacent
	})

	return adjacent
}
