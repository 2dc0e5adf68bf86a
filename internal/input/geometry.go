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

package input

import (
	"encoding/json"
	"errors"
	"fmt"

	"m4o.io/val3d/model"
)

var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// builder turns geometry boundaries into primitives. Each primitive gets
// its own surfaces, welding only the points it uses.
type builder struct {
	vertices []model.Point3
	snapTol  float64

	// templates is nil while templates themselves are read.
	templates *model.TemplateRegistry
}

// primitive builds the primitive of a geometry. On failure it returns an
// empty primitive of the declared type, if that type is known, for the
// error to be recorded on.
func (b *builder) primitive(id string, gd geometryDoc) (model.Primitive, *model.InputError) {
	switch gd.Type {
	case "Solid":
		var shells [][]faceDoc
		if err := b.unmarshal(gd, &shells); err != nil {
			return model.NewSolid(id), err
		}

		sol, err := b.solid(id, shells)
		if err != nil {
			return model.NewSolid(id), err
		}

		return sol, nil
	case "MultiSolid", "CompositeSolid":
		var solids [][][]faceDoc
		if err := b.unmarshal(gd, &solids); err != nil {
			return emptySolids(id, gd.Type), err
		}

		members := make([]*model.Solid, len(solids))
		for i, shells := range solids {
			sol, err := b.solid(fmt.Sprintf("%s#%d", id, i), shells)
			if err != nil {
				err.Info = fmt.Sprintf("solid %d: %s", i, err.Info)

				return emptySolids(id, gd.Type), err
			}

			members[i] = sol
		}

		if gd.Type == "MultiSolid" {
			return &model.MultiSolid{ID: id, Solids: members}, nil
		}

		return &model.CompositeSolid{ID: id, Solids: members}, nil
	case "MultiSurface", "CompositeSurface":
		var faces []faceDoc
		if err := b.unmarshal(gd, &faces); err != nil {
			return emptySurface(id, gd.Type, nil), err
		}

		var s *model.Surface
		if len(faces) > 0 {
			var err *model.InputError
			if s, err = b.surface(faces); err != nil {
				return emptySurface(id, gd.Type, nil), err
			}
		}

		return emptySurface(id, gd.Type, s), nil
	case "GeometryInstance":
		if b.templates == nil {
			return nil, &model.InputError{
				Code: model.FormatNotSupported,
				Info: fmt.Sprintf("geometry %s: instance inside a template", id),
				Err:  ErrUnsupportedGeometry,
			}
		}

		i := -1
		if gd.Template != nil {
			i = *gd.Template
		}

		return model.NewGeometryInstance(id, b.templates, i), nil
	default:
		return nil, &model.InputError{
			Code: model.FormatNotSupported,
			Info: fmt.Sprintf("geometry %s: type %q", id, gd.Type),
			Err:  ErrUnsupportedGeometry,
		}
	}
}

func (b *builder) unmarshal(gd geometryDoc, v any) *model.InputError {
	if len(gd.Boundaries) == 0 {
		return nil
	}

	if err := json.Unmarshal(gd.Boundaries, v); err != nil {
		return &model.InputError{Code: model.InvalidInputFile, Info: "boundaries", Err: err}
	}

	return nil
}

func (b *builder) solid(id string, shells [][]faceDoc) (*model.Solid, *model.InputError) {
	sol := model.NewSolid(id)

	for i, faces := range shells {
		s, err := b.surface(faces)
		if err != nil {
			err.Info = fmt.Sprintf("shell %d: %s", i, err.Info)

			return nil, err
		}

		if i == 0 {
			sol.SetExterior(s)
		} else {
			sol.AddInterior(s)
		}
	}

	return sol, nil
}

func (b *builder) surface(faces []faceDoc) (*model.Surface, *model.InputError) {
	if len(faces) == 0 {
		return nil, &model.InputError{Code: model.EmptyPrimitive, Info: "no faces", Err: model.ErrEmptyGeometry}
	}

	s := model.NewSurface(b.snapTol)

	for fi, f := range faces {
		rings := make([][]model.Point3, len(f.Rings))
		for ri, ring := range f.Rings {
			pts := make([]model.Point3, len(ring))
			for j, idx := range ring {
				if idx < 0 || idx >= len(b.vertices) {
					return nil, &model.InputError{
						Code: model.InvalidInputFile,
						Info: fmt.Sprintf("face %d ring %d: vertex %d out of range", fi, ri, idx),
					}
				}

				pts[j] = b.vertices[idx]
			}

			rings[ri] = pts
		}

		i := s.AddPolygon("", rings...)
		s.Faces[i].Reversed = f.Reversed
	}

	return s, nil
}

func emptySolids(id, typ string) model.Primitive {
	if typ == "MultiSolid" {
		return &model.MultiSolid{ID: id}
	}

	return &model.CompositeSolid{ID: id}
}

func emptySurface(id, typ string, s *model.Surface) model.Primitive {
	if typ == "MultiSurface" {
		return &model.MultiSurface{ID: id, Surface: s}
	}

	return &model.CompositeSurface{ID: id, Surface: s}
}
