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

// Dataset is the unit handed to the validator: features, the templates they
// may reference, the transform applied at ingestion and the dataset level
// (9xx) errors raised while reading the input.
type Dataset struct {
	InputFile string
	InputType string
	Transform Transform
	Templates *TemplateRegistry
	Features  []*Feature
	Errors    Errors
}

// NewDataset creates an empty dataset with an identity transform.
func NewDataset() *Dataset {
	return &Dataset{
		Transform: IdentityTransform(),
		Templates: NewTemplateRegistry(),
	}
}

// AddFeature appends a feature.
func (d *Dataset) AddFeature(f *Feature) {
	d.Features = append(d.Features, f)
}

// IsValid checks that no dataset error was recorded and every feature is
// valid.
func (d *Dataset) IsValid() bool {
	if d.Errors.HasErrors() {
		return false
	}

	for _, f := range d.Features {
		if !f.IsValid() {
			return false
		}
	}

	return true
}
