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
	"sync"
)

// GeometryTemplate is a primitive defined once and instanced by reference.
// Its lifetime is tied to the TemplateRegistry that owns it.
type GeometryTemplate struct {
	Primitive Primitive

	once sync.Once
}

// Do runs f on the template primitive exactly once, however many instances
// call it and from however many goroutines. Every caller returns only after
// f has completed.
func (t *GeometryTemplate) Do(f func(Primitive)) {
	t.once.Do(func() {
		f(t.Primitive)
	})
}

// TemplateRegistry owns the geometry templates of a dataset.
type TemplateRegistry struct {
	templates []*GeometryTemplate
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{}
}

// Add registers a primitive as a template and returns its index.
func (r *TemplateRegistry) Add(p Primitive) int {
	r.templates = append(r.templates, &GeometryTemplate{Primitive: p})

	return len(r.templates) - 1
}

// Get returns the template at index i.
func (r *TemplateRegistry) Get(i int) (*GeometryTemplate, error) {
	if r == nil || i < 0 || i >= len(r.templates) {
		return nil, fmt.Errorf("index %d: %w", i, ErrTemplateNotFound)
	}

	return r.templates[i], nil
}

// Len returns the number of registered templates.
func (r *TemplateRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.templates)
}

// GeometryInstance references a shared template. An instance whose template
// could not be resolved has a nil Template and an EmptyPrimitive finding.
type GeometryInstance struct {
	ID       string
	Template *GeometryTemplate
	Errors   Errors
}

var _ Primitive = &GeometryInstance{}

// NewGeometryInstance resolves template index i in the registry. A failed
// lookup is recorded on the instance and does not prevent its creation.
func NewGeometryInstance(id string, r *TemplateRegistry, i int) *GeometryInstance {
	inst := &GeometryInstance{ID: id}

	t, err := r.Get(i)
	if err != nil {
		(&InputError{Code: EmptyPrimitive, Info: "unresolved geometry template", Err: err}).Record(&inst.Errors)

		return inst
	}

	inst.Template = t

	return inst
}

func (g *GeometryInstance) isPrimitive() {}

func (g *GeometryInstance) GetID() string {
	return g.ID
}

func (g *GeometryInstance) Type() PrimitiveType {
	return GeometryTemplateType
}

func (g *GeometryInstance) IsValid() bool {
	return !g.Errors.HasErrors() && g.Template != nil && g.Template.Primitive.IsValid()
}

func (g *GeometryInstance) UniqueErrorCodes() []Code {
	set := make(map[Code]struct{})

	MergeCodes(set, g.Errors.UniqueCodes())
	if g.Template != nil {
		MergeCodes(set, g.Template.Primitive.UniqueErrorCodes())
	}

	return SortedCodes(set)
}

func (g *GeometryInstance) Findings() []Finding {
	findings := g.Errors.Findings()

	if g.Template != nil {
		for _, f := range g.Template.Primitive.Findings() {
			f.Info = "template | " + f.Info
			findings = append(findings, f)
		}
	}

	return findings
}
