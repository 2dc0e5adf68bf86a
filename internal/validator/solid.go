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
	"slices"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"m4o.io/val3d/internal/geom"
	"m4o.io/val3d/model"
)

// solidGeometry is the geometry of a valid solid: its exterior shell and its
// cavities.
type solidGeometry struct {
	exterior  *geom.Shell
	interiors []*geom.Shell
}

func (g *solidGeometry) shells() []*geom.Shell {
	return append([]*geom.Shell{g.exterior}, g.interiors...)
}

func (g *solidGeometry) box() *model.BoundingBox {
	return g.exterior.Box
}

// locate locates p relative to the material of the solid.
func (g *solidGeometry) locate(p r3.Vector, eps float64) geom.Location {
	loc := g.exterior.Locate(p, eps)
	if loc != geom.Inside {
		return loc
	}

	for _, cavity := range g.interiors {
		switch cavity.Locate(p, eps) {
		case geom.Inside:
			return geom.Outside
		case geom.OnBoundary:
			return geom.OnBoundary
		case geom.Outside:
		}
	}

	return geom.Inside
}

// validateSolid checks the shells of a solid, then how they sit together. A
// solid that already carries findings, from ingestion or an earlier run, is
// not checked again.
func (e *Engine) validateSolid(sol *model.Solid) (*solidGeometry, bool) {
	if sol.Errors.HasErrors() {
		return nil, false
	}

	if sol.Exterior == nil {
		(&model.InputError{Code: model.EmptyPrimitive, Info: "solid without exterior shell", Err: model.ErrEmptyGeometry}).Record(&sol.Errors)

		return nil, false
	}

	g := &solidGeometry{}

	ext, ok := e.validateShell(sol.Exterior, exteriorShell)
	g.exterior = ext

	for _, sh := range sol.Interiors {
		in, iok := e.validateShell(sh, interiorShell)
		g.interiors = append(g.interiors, in)
		ok = ok && iok
	}

	if !ok {
		return nil, false
	}

	if len(g.interiors) == 0 {
		return g, true
	}

	if !e.checkShellInteractions(sol, g) {
		return nil, false
	}

	for i, in := range g.interiors {
		if in.SignedVolume() > 0 {
			sol.Errors.Add(model.WrongOrientationShell, fmt.Sprintf("shell %d is oriented outward", i+1))

			ok = false
		}
	}

	if !e.checkInteriorConnected(sol, g) {
		ok = false
	}

	if !ok {
		return nil, false
	}

	return g, true
}

// checkShellInteractions looks for duplicated shells (402), intersecting
// shells (401) and cavities outside the exterior shell (403).
func (e *Engine) checkShellInteractions(sol *model.Solid, g *solidGeometry) bool {
	ok := true

	surfaces := sol.Shells()
	shells := g.shells()

	duplicate := make(map[[2]int]bool)
	for i := range surfaces {
		for j := i + 1; j < len(surfaces); j++ {
			if sameShell(surfaces[i], surfaces[j], e.eps) {
				sol.Errors.Add(model.DuplicatedShells, fmt.Sprintf("shells %d and %d", i, j))

				duplicate[[2]int{i, j}] = true
				ok = false
			}
		}
	}

	for i := range shells {
		for j := i + 1; j < len(shells); j++ {
			if duplicate[[2]int{i, j}] {
				continue
			}

			if shellsIntersect(shells[i], shells[j], e.contactEps) {
				sol.Errors.Add(model.IntersectionShells, fmt.Sprintf("shells %d and %d", i, j))

				ok = false
			}
		}
	}

	for i, in := range g.interiors {
		for _, v := range in.Vertices() {
			if g.exterior.Locate(v, e.eps) == geom.Outside {
				sol.Errors.Add(model.InnerShellOutside, fmt.Sprintf("shell %d: vertex %s", i+1, model.FormatPoint(v)))

				ok = false

				break
			}
		}
	}

	return ok
}

// forEachFacePair calls f for every pair of faces of a and b whose boxes
// overlap; f returns false to stop.
func forEachFacePair(a, b *geom.Shell, eps float64, f func(pa, pb *geom.Polygon) bool) {
	if !a.Box.Intersects(b.Box, eps) {
		return
	}

	boxes := make([]*model.BoundingBox, len(b.Faces))
	for i, p := range b.Faces {
		boxes[i] = p.Box
	}

	idx := geom.NewBoxIndex(boxes, eps)
	for _, pa := range a.Faces {
		for _, j := range idx.Search(pa.Box) {
			if !f(pa, b.Faces[j]) {
				return
			}
		}
	}
}

func shellsIntersect(a, b *geom.Shell, eps float64) bool {
	found := false

	forEachFacePair(a, b, eps, func(pa, pb *geom.Polygon) bool {
		c := geom.FaceContact(pa, pb, eps)
		found = c.Kind == geom.Crossing || (c.Kind == geom.Overlapping && c.SameSide)

		return !found
	})

	return found
}

// checkInteriorConnected rejects shells that touch each other along a
// surface patch or along a curve that is not a straight segment, both of
// which split the material of the solid.
func (e *Engine) checkInteriorConnected(sol *model.Solid, g *solidGeometry) bool {
	shells := g.shells()

	ok := true
	for i := range shells {
		for j := i + 1; j < len(shells); j++ {
			var pts []r3.Vector

			patch := false
			forEachFacePair(shells[i], shells[j], e.contactEps, func(pa, pb *geom.Polygon) bool {
				c := geom.FaceContact(pa, pb, e.contactEps)

				switch c.Kind {
				case geom.Overlapping:
					patch = true
				case geom.Touching:
					pts = append(pts, c.Points...)
				case geom.NoContact, geom.Crossing:
				}

				return !patch
			})

			switch {
			case patch:
				sol.Errors.Add(model.InteriorDisconnected, fmt.Sprintf("shells %d and %d share a surface", i, j))

				ok = false
			case spansPlane(pts, e.eps):
				sol.Errors.Add(model.InteriorDisconnected, fmt.Sprintf("shells %d and %d touch along a curve", i, j))

				ok = false
			}
		}
	}

	return ok
}

// spansPlane checks that the points are not all on one line.
func spansPlane(pts []r3.Vector, eps float64) bool {
	if len(pts) < 3 {
		return false
	}

	return !collinear(pts, eps)
}

// sameShell checks that two surfaces have the same faces, up to orientation,
// once their vertices are matched within eps.
func sameShell(a, b *model.Surface, eps float64) bool {
	if len(a.Faces) != len(b.Faces) || a.NumPoints() != b.NumPoints() {
		return false
	}

	remap := make([]int, a.NumPoints())
	for i := range remap {
		j, found := b.Find(a.Point(i), eps)
		if !found {
			return false
		}

		remap[i] = j
	}

	faces := make(map[string]int, len(b.Faces))
	for _, f := range b.Faces {
		faces[faceKey(f, nil)]++
	}

	for _, f := range a.Faces {
		k := faceKey(f, remap)
		if faces[k] == 0 {
			return false
		}

		faces[k]--
	}

	return true
}

func faceKey(f model.Face, remap []int) string {
	var idx []int
	for _, r := range f.Rings {
		for _, i := range r {
			if remap != nil {
				i = remap[i]
			}

			idx = append(idx, i)
		}
	}

	slices.Sort(idx)

	var sb strings.Builder
	for _, i := range idx {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(',')
	}

	return sb.String()
}
