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

// Package input reads geometry dumps, optionally compressed, into datasets.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"m4o.io/val3d/model"
)

// DocumentType is the type tag of a geometry dump.
const DocumentType = "GeometryDump"

var ErrUnsupportedDocument = errors.New("unsupported document")

type document struct {
	Type      string        `json:"type"`
	Transform *transformDoc `json:"transform"`
	Vertices  [][]float64   `json:"vertices"`
	Templates *templatesDoc `json:"templates"`
	Features  []featureDoc  `json:"features"`
}

type transformDoc struct {
	Scale     []float64 `json:"scale"`
	Translate []float64 `json:"translate"`
}

type templatesDoc struct {
	Vertices   [][]float64   `json:"vertices"`
	Geometries []geometryDoc `json:"geometries"`
}

type featureDoc struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Parts    []string      `json:"parts"`
	Parent   string        `json:"parent"`
	Geometry []geometryDoc `json:"geometry"`
}

type geometryDoc struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Boundaries json.RawMessage `json:"boundaries"`
	Template   *int            `json:"template"`
}

// faceDoc is either a list of rings or an object flagging a face whose
// rings are to be reversed.
type faceDoc struct {
	Rings    [][]int
	Reversed bool
}

func (f *faceDoc) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &f.Rings); err == nil {
		return nil
	}

	var obj struct {
		Rings    [][]int `json:"rings"`
		Reversed bool    `json:"reversed"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	f.Rings, f.Reversed = obj.Rings, obj.Reversed

	return nil
}

// Decode reads a geometry dump. The dataset is returned even when the
// document is rejected, carrying the 9xx finding that is also returned as
// a *model.InputError. Findings scoped to one feature or primitive are
// recorded there and do not fail Decode.
func Decode(r io.Reader, name string, snapTol float64) (*model.Dataset, error) {
	ds := model.NewDataset()
	ds.InputFile = name
	ds.InputType = DocumentType

	fail := func(err *model.InputError) (*model.Dataset, error) {
		err.Record(&ds.Errors)

		return ds, err
	}

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fail(&model.InputError{Code: model.InvalidInputFile, Info: "malformed document", Err: err})
	}

	if doc.Type != DocumentType {
		return fail(&model.InputError{
			Code: model.FormatNotSupported,
			Info: fmt.Sprintf("document type %q", doc.Type),
			Err:  ErrUnsupportedDocument,
		})
	}

	raw, err := points(doc.Vertices)
	if err != nil {
		return fail(&model.InputError{Code: model.InvalidInputFile, Info: "vertices", Err: err})
	}

	t, err := transform(doc.Transform)
	if err != nil {
		return fail(&model.InputError{Code: model.InvalidInputFile, Info: "transform", Err: err})
	}

	ds.Transform = t.Centered(raw)

	vertices := make([]model.Point3, len(raw))
	for i, p := range raw {
		vertices[i] = ds.Transform.Apply(p)
	}

	if doc.Templates != nil {
		if err := decodeTemplates(ds, doc.Templates, snapTol); err != nil {
			return fail(err)
		}
	}

	b := builder{vertices: vertices, snapTol: snapTol, templates: ds.Templates}

	byID := make(map[string]*model.Feature, len(doc.Features))
	for i, fd := range doc.Features {
		id := fd.ID
		if id == "" {
			id = "#" + strconv.Itoa(i)
		}

		f := model.NewFeature(id, fd.Type)
		for j, gd := range fd.Geometry {
			gid := gd.ID
			if gid == "" {
				gid = id + "#" + strconv.Itoa(j)
			}

			p, err := b.primitive(gid, gd)

			switch {
			case err == nil:
				f.AddPrimitive(p)
			case p != nil:
				err.Record(model.ErrorsOf(p))
				f.AddPrimitive(p)
			default:
				err.Record(&f.Errors)
			}
		}

		ds.AddFeature(f)
		byID[id] = f
	}

	mergeParts(ds, doc.Features, byID)

	return ds, nil
}

// mergeParts folds every part into the topmost feature it belongs to and
// removes it from the dataset.
func mergeParts(ds *model.Dataset, docs []featureDoc, byID map[string]*model.Feature) {
	parent := make(map[string]string)

	for _, fd := range docs {
		for _, part := range fd.Parts {
			if _, ok := byID[part]; ok && part != fd.ID {
				parent[part] = fd.ID
			}
		}

		if _, ok := byID[fd.Parent]; ok && fd.Parent != fd.ID {
			if _, set := parent[fd.ID]; !set {
				parent[fd.ID] = fd.Parent
			}
		}
	}

	// the root of a parent loop is its smallest id
	root := func(id string) string {
		path := []string{id}
		seen := map[string]int{id: 0}
		for {
			p, ok := parent[id]
			if !ok {
				return id
			}

			if at, loop := seen[p]; loop {
				return slices.Min(path[at:])
			}

			seen[p] = len(path)
			path = append(path, p)
			id = p
		}
	}

	kept := ds.Features[:0]
	for _, f := range ds.Features {
		r := root(f.ID)
		if r == f.ID {
			kept = append(kept, f)

			continue
		}

		byID[r].MergePart(f)
	}

	ds.Features = kept
}

func decodeTemplates(ds *model.Dataset, td *templatesDoc, snapTol float64) *model.InputError {
	vertices, err := points(td.Vertices)
	if err != nil {
		return &model.InputError{Code: model.InvalidInputFile, Info: "template vertices", Err: err}
	}

	b := builder{vertices: vertices, snapTol: snapTol}

	for i, gd := range td.Geometries {
		id := gd.ID
		if id == "" {
			id = "template#" + strconv.Itoa(i)
		}

		p, err := b.primitive(id, gd)
		if p == nil {
			// keep the template indices of the document
			p = &model.MultiSurface{ID: id}
		}

		if err != nil {
			err.Record(model.ErrorsOf(p))
		}

		ds.Templates.Add(p)
	}

	return nil
}

func points(coords [][]float64) ([]model.Point3, error) {
	pts := make([]model.Point3, len(coords))
	for i, c := range coords {
		if len(c) != 3 {
			return nil, fmt.Errorf("vertex %d has %d coordinates", i, len(c))
		}

		pts[i] = model.Point3{X: c[0], Y: c[1], Z: c[2]}
	}

	return pts, nil
}

func transform(td *transformDoc) (model.Transform, error) {
	t := model.IdentityTransform()
	if td == nil {
		return t, nil
	}

	if td.Scale != nil {
		if len(td.Scale) != 3 {
			return t, fmt.Errorf("scale has %d components", len(td.Scale))
		}

		t.Scale = model.Point3{X: td.Scale[0], Y: td.Scale[1], Z: td.Scale[2]}
	}

	if td.Translate != nil {
		if len(td.Translate) != 3 {
			return t, fmt.Errorf("translate has %d components", len(td.Translate))
		}

		t.Translate = model.Point3{X: td.Translate[0], Y: td.Translate[1], Z: td.Translate[2]}
	}

	return t, nil
}
