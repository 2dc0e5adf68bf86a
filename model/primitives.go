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

// Package model contains the primitive graph handed to the validator: points,
// surfaces, solids, their aggregates, features and the error taxonomy.
package model

import (
	"fmt"
	"strconv"
)

// PrimitiveType identifies a variant of Primitive.
type PrimitiveType int

const (
	SolidType PrimitiveType = iota
	CompositeSolidType
	MultiSolidType
	CompositeSurfaceType
	MultiSurfaceType
	GeometryTemplateType
)

var primitiveTypeNames = [...]string{
	SolidType:            "Solid",
	CompositeSolidType:   "CompositeSolid",
	MultiSolidType:       "MultiSolid",
	CompositeSurfaceType: "CompositeSurface",
	MultiSurfaceType:     "MultiSurface",
	GeometryTemplateType: "GeometryTemplate",
}

func (t PrimitiveType) String() string {
	if t >= 0 && int(t) < len(primitiveTypeNames) {
		return primitiveTypeNames[t]
	}

	return "PrimitiveType(" + strconv.Itoa(int(t)) + ")"
}

// PrimitiveTypes returns every primitive type in report order.
func PrimitiveTypes() []PrimitiveType {
	return []PrimitiveType{
		SolidType, CompositeSolidType, MultiSolidType,
		CompositeSurfaceType, MultiSurfaceType, GeometryTemplateType,
	}
}

// Primitive is the closed set of geometries a Feature can own.
type Primitive interface {
	isPrimitive() // prevents extensions

	GetID() string

	Type() PrimitiveType

	// IsValid checks that neither the primitive nor any of its structural
	// children recorded a finding.
	IsValid() bool

	UniqueErrorCodes() []Code

	// Findings returns the findings of the primitive and of its children.
	Findings() []Finding
}

// Solid is one exterior shell and zero or more interior shells.
type Solid struct {
	ID        string
	Exterior  *Surface
	Interiors []*Surface
	Errors    Errors
}

var _ Primitive = &Solid{}

// NewSolid creates a solid with no shells.
func NewSolid(id string) *Solid {
	return &Solid{ID: id}
}

// SetExterior sets the exterior shell.
func (s *Solid) SetExterior(sh *Surface) {
	sh.ID = 0
	s.Exterior = sh
}

// AddInterior appends an interior shell.
func (s *Solid) AddInterior(sh *Surface) {
	sh.ID = len(s.Interiors) + 1
	s.Interiors = append(s.Interiors, sh)
}

// Shells returns the exterior shell followed by the interior ones.
func (s *Solid) Shells() []*Surface {
	var shells []*Surface
	if s.Exterior != nil {
		shells = append(shells, s.Exterior)
	}

	return append(shells, s.Interiors...)
}

func (s *Solid) isPrimitive() {}

func (s *Solid) GetID() string {
	return s.ID
}

func (s *Solid) Type() PrimitiveType {
	return SolidType
}

func (s *Solid) IsValid() bool {
	if s.Errors.HasErrors() {
		return false
	}

	for _, sh := range s.Shells() {
		if !sh.IsValid() {
			return false
		}
	}

	return true
}

func (s *Solid) UniqueErrorCodes() []Code {
	set := make(map[Code]struct{})

	MergeCodes(set, s.Errors.UniqueCodes())
	for _, sh := range s.Shells() {
		MergeCodes(set, sh.Errors.UniqueCodes())
	}

	return SortedCodes(set)
}

func (s *Solid) Findings() []Finding {
	findings := s.Errors.Findings()
	for _, sh := range s.Shells() {
		findings = append(findings, sh.Errors.FindingsWithPrefix(sh.label())...)
	}

	return findings
}

// MultiSolid is a group of solids with no adjacency requirement.
type MultiSolid struct {
	ID     string
	Solids []*Solid
	Errors Errors
}

var _ Primitive = &MultiSolid{}

func (m *MultiSolid) isPrimitive() {}

func (m *MultiSolid) GetID() string {
	return m.ID
}

func (m *MultiSolid) Type() PrimitiveType {
	return MultiSolidType
}

func (m *MultiSolid) IsValid() bool {
	return solidsValid(&m.Errors, m.Solids)
}

func (m *MultiSolid) UniqueErrorCodes() []Code {
	return solidsCodes(&m.Errors, m.Solids)
}

func (m *MultiSolid) Findings() []Finding {
	return solidsFindings(&m.Errors, m.Solids)
}

// CompositeSolid is a group of solids that must form one connected region.
type CompositeSolid struct {
	ID     string
	Solids []*Solid
	Errors Errors
}

var _ Primitive = &CompositeSolid{}

func (c *CompositeSolid) isPrimitive() {}

func (c *CompositeSolid) GetID() string {
	return c.ID
}

func (c *CompositeSolid) Type() PrimitiveType {
	return CompositeSolidType
}

func (c *CompositeSolid) IsValid() bool {
	return solidsValid(&c.Errors, c.Solids)
}

func (c *CompositeSolid) UniqueErrorCodes() []Code {
	return solidsCodes(&c.Errors, c.Solids)
}

func (c *CompositeSolid) Findings() []Finding {
	return solidsFindings(&c.Errors, c.Solids)
}

func solidsValid(errs *Errors, solids []*Solid) bool {
	if errs.HasErrors() {
		return false
	}

	for _, s := range solids {
		if !s.IsValid() {
			return false
		}
	}

	return true
}

func solidsCodes(errs *Errors, solids []*Solid) []Code {
	set := make(map[Code]struct{})

	MergeCodes(set, errs.UniqueCodes())
	for _, s := range solids {
		MergeCodes(set, s.UniqueErrorCodes())
	}

	return SortedCodes(set)
}

func solidsFindings(errs *Errors, solids []*Solid) []Finding {
	findings := errs.Findings()

	for i, s := range solids {
		prefix := "solid " + strconv.Itoa(i)
		for _, f := range s.Findings() {
			f.Info = prefix + " | " + f.Info
			findings = append(findings, f)
		}
	}

	return findings
}

// MultiSurface is a set of faces with no connectivity requirement.
type MultiSurface struct {
	ID      string
	Surface *Surface
	Errors  Errors
}

var _ Primitive = &MultiSurface{}

func (m *MultiSurface) isPrimitive() {}

func (m *MultiSurface) GetID() string {
	return m.ID
}

func (m *MultiSurface) Type() PrimitiveType {
	return MultiSurfaceType
}

func (m *MultiSurface) IsValid() bool {
	return surfaceValid(&m.Errors, m.Surface)
}

func (m *MultiSurface) UniqueErrorCodes() []Code {
	return surfaceCodes(&m.Errors, m.Surface)
}

func (m *MultiSurface) Findings() []Finding {
	return surfaceFindings(&m.Errors, m.Surface)
}

// CompositeSurface is a set of faces that must be edge-connected.
type CompositeSurface struct {
	ID      string
	Surface *Surface
	Errors  Errors
}

var _ Primitive = &CompositeSurface{}

func (c *CompositeSurface) isPrimitive() {}

func (c *CompositeSurface) GetID() string {
	return c.ID
}

func (c *CompositeSurface) Type() PrimitiveType {
	return CompositeSurfaceType
}

func (c *CompositeSurface) IsValid() bool {
	return surfaceValid(&c.Errors, c.Surface)
}

func (c *CompositeSurface) UniqueErrorCodes() []Code {
	return surfaceCodes(&c.Errors, c.Surface)
}

func (c *CompositeSurface) Findings() []Finding {
	return surfaceFindings(&c.Errors, c.Surface)
}

func surfaceValid(errs *Errors, s *Surface) bool {
	return !errs.HasErrors() && (s == nil || s.IsValid())
}

func surfaceCodes(errs *Errors, s *Surface) []Code {
	set := make(map[Code]struct{})

	MergeCodes(set, errs.UniqueCodes())
	if s != nil {
		MergeCodes(set, s.Errors.UniqueCodes())
	}

	return SortedCodes(set)
}

func surfaceFindings(errs *Errors, s *Surface) []Finding {
	findings := errs.Findings()
	if s != nil {
		findings = append(findings, s.Errors.Findings()...)
	}

	return findings
}

// ErrorsOf returns the accumulator of the primitive's own findings.
func ErrorsOf(p Primitive) *Errors {
	switch p := p.(type) {
	case *Solid:
		return &p.Errors
	case *MultiSolid:
		return &p.Errors
	case *CompositeSolid:
		return &p.Errors
	case *MultiSurface:
		return &p.Errors
	case *CompositeSurface:
		return &p.Errors
	case *GeometryInstance:
		return &p.Errors
	default:
		panic(fmt.Sprintf("unknown primitive %T", p))
	}
}
