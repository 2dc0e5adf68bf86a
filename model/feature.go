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

// Feature is a city object owning one or more primitives.
type Feature struct {
	ID         string
	Type       string
	Primitives []Primitive
	Errors     Errors

	// origins holds, per primitive, the id of the feature it was declared on
	// before parts were merged.
	origins []string
}

// NewFeature creates a feature with no primitives.
func NewFeature(id, typ string) *Feature {
	return &Feature{ID: id, Type: typ}
}

// AddPrimitive appends a primitive declared on the feature itself.
func (f *Feature) AddPrimitive(p Primitive) {
	f.Primitives = append(f.Primitives, p)
	f.origins = append(f.origins, f.ID)
}

// MergePart folds the primitives of a constituent feature into f. The part
// gives up ownership of its primitives.
func (f *Feature) MergePart(part *Feature) {
	for i, p := range part.Primitives {
		f.Primitives = append(f.Primitives, p)
		f.origins = append(f.origins, part.Origin(i))
	}

	part.Primitives = nil
	part.origins = nil
}

// Origin returns the id of the feature primitive i was declared on.
func (f *Feature) Origin(i int) string {
	if i < len(f.origins) {
		return f.origins[i]
	}

	return f.ID
}

// HasParts checks if primitives of more than one feature were merged into f.
func (f *Feature) HasParts() bool {
	for i := range f.Primitives {
		if f.Origin(i) != f.ID {
			return true
		}
	}

	return false
}

// IsValid checks that the feature recorded no finding and every primitive
// is valid.
func (f *Feature) IsValid() bool {
	if f.Errors.HasErrors() {
		return false
	}

	for _, p := range f.Primitives {
		if !p.IsValid() {
			return false
		}
	}

	return true
}

// UniqueErrorCodes returns the codes of the feature and its primitives.
func (f *Feature) UniqueErrorCodes() []Code {
	set := make(map[Code]struct{})

	MergeCodes(set, f.Errors.UniqueCodes())
	for _, p := range f.Primitives {
		MergeCodes(set, p.UniqueErrorCodes())
	}

	return SortedCodes(set)
}
