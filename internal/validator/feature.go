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

	"m4o.io/val3d/model"
)

// ValidatePrimitive runs the cascade on one primitive and reports whether it
// is valid. Findings are recorded on the primitive and its children, which
// must not be validated concurrently elsewhere; shared templates are
// validated once whatever the number of instances. A primitive that already
// carries findings, such as 9xx ones recorded at ingestion, is not checked.
func (e *Engine) ValidatePrimitive(p model.Primitive) bool {
	_, ok := e.validatePrimitive(p)

	return ok
}

// validatePrimitive returns the geometry of the solids of a valid primitive
// placed in the dataset, for the checks between primitives. A panic raised
// by the checks is recorded as UNKNOWN_ERROR on p alone.
func (e *Engine) validatePrimitive(p model.Primitive) (geoms []*solidGeometry, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("unable to validate primitive", "primitive", p.GetID(), "panic", r)
			model.ErrorsOf(p).Add(model.UnknownError, fmt.Sprintf("%s: %v", p.GetID(), r))

			geoms, ok = nil, false
		}
	}()

	return e.checkPrimitive(p)
}

func (e *Engine) checkPrimitive(p model.Primitive) ([]*solidGeometry, bool) {
	switch p := p.(type) {
	case *model.Solid:
		g, ok := e.validateSolid(p)
		if !ok {
			return nil, false
		}

		return []*solidGeometry{g}, true
	case *model.MultiSolid:
		return e.validateSolids(&p.Errors, p.Solids, false)
	case *model.CompositeSolid:
		return e.validateSolids(&p.Errors, p.Solids, true)
	case *model.MultiSurface:
		switch {
		case p.Errors.HasErrors():
			return nil, false
		case p.Surface == nil:
			recordEmpty(&p.Errors, "multi surface without faces")

			return nil, false
		}

		return nil, e.validateMultiSurface(p.Surface)
	case *model.CompositeSurface:
		switch {
		case p.Errors.HasErrors():
			return nil, false
		case p.Surface == nil:
			recordEmpty(&p.Errors, "composite surface without faces")

			return nil, false
		}

		_, ok := e.validateShell(p.Surface, openSurface)

		return nil, ok
	case *model.GeometryInstance:
		if p.Template == nil {
			return nil, false
		}

		// every instance shares the verdict of the template, panics included
		p.Template.Do(func(t model.Primitive) {
			e.validatePrimitive(t)
		})

		return nil, p.IsValid()
	default:
		panic(fmt.Sprintf("unknown primitive %T", p))
	}
}

func recordEmpty(errs *model.Errors, info string) {
	(&model.InputError{Code: model.EmptyPrimitive, Info: info, Err: model.ErrEmptyGeometry}).Record(errs)
}

type placedSolid struct {
	origin string
	geom   *solidGeometry
}

// ValidateFeature validates every primitive of the feature, then checks that
// solids coming from different parts do not overlap.
func (e *Engine) ValidateFeature(f *model.Feature) bool {
	var solids []placedSolid

	ok := true
	for i, p := range f.Primitives {
		geoms, pok := e.validatePrimitive(p)
		if !pok {
			ok = false

			e.log.Debug("invalid primitive", "feature", f.ID, "primitive", p.GetID(), "type", p.Type(), "codes", p.UniqueErrorCodes())

			continue
		}

		for _, g := range geoms {
			solids = append(solids, placedSolid{origin: f.Origin(i), geom: g})
		}
	}

	if ok && f.HasParts() {
		for i, a := range solids {
			for _, b := range solids[i+1:] {
				if a.origin != b.origin && solidsOverlap(a.geom, b.geom, e.contactEps) {
					f.Errors.Add(model.BuildingPartsOverlap, fmt.Sprintf("%s and %s", a.origin, b.origin))
				}
			}
		}
	}

	valid := f.IsValid()
	e.log.Debug("feature validated", "feature", f.ID, "type", f.Type, "valid", valid)

	return valid
}
