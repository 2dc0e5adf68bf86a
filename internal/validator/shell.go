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

	"m4o.io/val3d/internal/geom"
	"m4o.io/val3d/model"
)

type shellKind int

const (
	exteriorShell shellKind = iota
	interiorShell
	openSurface
)

// minShellFaces is the smallest number of faces closing a volume.
const minShellFaces = 4

type edgeKey struct {
	a, b int
}

type edgeUse struct {
	face    int
	forward bool
}

// topology is the edge and vertex incidence of a surface.
type topology struct {
	edges       map[edgeKey][]edgeUse
	vertexFaces map[int][]int
	vertexEdges map[int][]edgeKey
}

func newTopology(s *model.Surface) *topology {
	t := &topology{
		edges:       make(map[edgeKey][]edgeUse),
		vertexFaces: make(map[int][]int),
		vertexEdges: make(map[int][]edgeKey),
	}

	for fi, f := range s.Faces {
		for _, r := range f.Rings {
			for i, a := range r {
				b := r[(i+1)%len(r)]

				k := edgeKey{a: min(a, b), b: max(a, b)}
				if _, known := t.edges[k]; !known {
					t.vertexEdges[k.a] = append(t.vertexEdges[k.a], k)
					t.vertexEdges[k.b] = append(t.vertexEdges[k.b], k)
				}

				t.edges[k] = append(t.edges[k], edgeUse{face: fi, forward: a < b})

				if !slices.Contains(t.vertexFaces[a], fi) {
					t.vertexFaces[a] = append(t.vertexFaces[a], fi)
				}
			}
		}
	}

	return t
}

func (t *topology) sortedEdges() []edgeKey {
	keys := make([]edgeKey, 0, len(t.edges))
	for k := range t.edges {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(x, y edgeKey) int {
		if x.a != y.a {
			return x.a - y.a
		}

		return x.b - y.b
	})

	return keys
}

func edgeLabel(s *model.Surface, k edgeKey) string {
	return fmt.Sprintf("edge %s-%s", model.FormatPoint(s.Point(k.a)), model.FormatPoint(s.Point(k.b)))
}

// validateFaces checks every face and returns their polygons. A surface
// already checked only has its polygons rebuilt.
func (e *Engine) validateFaces(s *model.Surface) ([]*geom.Polygon, bool) {
	polys := make([]*geom.Polygon, len(s.Faces))

	if s.Checked() {
		for fi := range s.Faces {
			polys[fi], _ = facePolygon(s, fi)
		}

		return polys, s.IsValid()
	}

	defer s.MarkChecked()

	ok := true
	for fi := range s.Faces {
		var fok bool

		polys[fi], fok = e.validateFace(s, fi)
		ok = ok && fok
	}

	if !checkUnusedVertices(s) {
		ok = false
	}

	return polys, ok
}

func checkUnusedVertices(s *model.Surface) bool {
	used := make([]bool, s.NumPoints())
	for _, f := range s.Faces {
		for _, r := range f.Rings {
			for _, i := range r {
				used[i] = true
			}
		}
	}

	ok := true
	for i, u := range used {
		if !u {
			s.Errors.Add(model.VerticesNotUsed, "vertex "+model.FormatPoint(s.Point(i)))

			ok = false
		}
	}

	return ok
}

// validateMultiSurface checks the faces of a surface without any relation
// between them.
func (e *Engine) validateMultiSurface(s *model.Surface) bool {
	_, ok := e.validateFaces(s)

	return ok
}

// validateShell checks the surface as a shell. Open surfaces are checked for
// edge-connectivity and manifoldness only; closed shells must also bound a
// volume, outward for an exterior shell.
func (e *Engine) validateShell(s *model.Surface, kind shellKind) (*geom.Shell, bool) {
	checked := s.Checked()

	polys, ok := e.validateFaces(s)
	if !ok {
		return nil, false
	}

	if checked {
		return geom.NewShell(polys), true
	}

	if kind != openSurface && len(s.Faces) < minShellFaces {
		s.Errors.Add(model.TooFewPolygons, fmt.Sprintf("%d faces", len(s.Faces)))

		return nil, false
	}

	topo := newTopology(s)

	if !checkEdges(s, topo, kind != openSurface) {
		return nil, false
	}

	if !checkVertices(s, topo) {
		return nil, false
	}

	if e.tol.Overlap >= 0 && !e.checkSelfIntersection(s, polys) {
		return nil, false
	}

	shell := geom.NewShell(polys)

	if kind == exteriorShell && shell.SignedVolume() < 0 {
		s.Errors.Add(model.PolygonWrongOrientation, "faces are oriented inward")

		return nil, false
	}

	return shell, true
}

// checkEdges requires every edge to be used by exactly two faces in opposite
// directions. Open surfaces may have boundary edges.
func checkEdges(s *model.Surface, topo *topology, closed bool) bool {
	ok := true
	stop := false

	for _, k := range topo.sortedEdges() {
		uses := topo.edges[k]

		switch {
		case len(uses) == 1:
			if closed {
				s.Errors.Add(model.ShellNotClosed, edgeLabel(s, k))

				ok, stop = false, true
			}
		case len(uses) > 2:
			s.Errors.Add(model.NonManifoldEdge, fmt.Sprintf("%s used by %d faces", edgeLabel(s, k), len(uses)))

			ok, stop = false, true
		case uses[0].forward == uses[1].forward:
			s.Errors.Add(model.NotValid2Manifold, fmt.Sprintf("%s: faces %s and %s", edgeLabel(s, k),
				s.FaceLabel(uses[0].face), s.FaceLabel(uses[1].face)))

			ok = false
		}
	}

	if stop {
		return false
	}

	return ok
}

// checkVertices requires the faces around each vertex to form a single fan
// (303) and all faces to be connected through edges (305).
func checkVertices(s *model.Surface, topo *topology) bool {
	ok := true

	vertices := make([]int, 0, len(topo.vertexFaces))
	for v := range topo.vertexFaces {
		vertices = append(vertices, v)
	}

	slices.Sort(vertices)

	for _, v := range vertices {
		faces := topo.vertexFaces[v]
		if len(faces) < 2 {
			continue
		}

		fan := newGraph(faces)
		for _, k := range topo.vertexEdges[v] {
			if uses := topo.edges[k]; len(uses) == 2 {
				join(fan, uses[0].face, uses[1].face)
			}
		}

		if components(fan) > 1 {
			s.Errors.Add(model.NonManifoldVertex, "vertex "+model.FormatPoint(s.Point(v)))

			ok = false
		}
	}

	parts := newGraph(sequence(len(s.Faces)))
	for _, uses := range topo.edges {
		for _, u := range uses[1:] {
			join(parts, uses[0].face, u.face)
		}
	}

	if n := components(parts); n > 1 {
		s.Errors.Add(model.SeparateParts, fmt.Sprintf("%d parts", n))

		ok = false
	}

	return ok
}

// checkSelfIntersection requires faces to meet only at shared vertices and
// edges.
func (e *Engine) checkSelfIntersection(s *model.Surface, polys []*geom.Polygon) bool {
	boxes := make([]*model.BoundingBox, len(polys))
	for i, p := range polys {
		boxes[i] = p.Box
	}

	faceVertices := make([]map[int]struct{}, len(s.Faces))
	for fi, f := range s.Faces {
		faceVertices[fi] = make(map[int]struct{})
		for _, r := range f.Rings {
			for _, i := range r {
				faceVertices[fi][i] = struct{}{}
			}
		}
	}

	shared := func(p model.Point3, i, j int) bool {
		v, found := s.Find(p, e.contactEps)
		if !found {
			return false
		}

		_, inI := faceVertices[i][v]
		_, inJ := faceVertices[j][v]

		return inI && inJ
	}

	ok := true

	idx := geom.NewBoxIndex(boxes, e.contactEps)
	for i, p := range polys {
		for _, j := range idx.Search(p.Box) {
			if j <= i {
				continue
			}

			c := geom.FaceContact(p, polys[j], e.contactEps)

			bad := c.Kind == geom.Crossing || c.Kind == geom.Overlapping ||
				(c.Kind == geom.Touching && c.Interior)
			if c.Kind == geom.Touching && !bad {
				for _, pt := range c.Points {
					if !shared(pt, i, j) {
						bad = true

						break
					}
				}
			}

			if bad {
				s.Errors.Add(model.ShellSelfIntersection, fmt.Sprintf("faces %s and %s", s.FaceLabel(i), s.FaceLabel(j)))

				ok = false
			}
		}
	}

	return ok
}
