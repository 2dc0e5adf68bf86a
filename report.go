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

package val3d

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"m4o.io/val3d/model"
)

// ReportType tags the JSON report.
const ReportType = "val3d_report"

// Parameters are the tolerances a report was produced with.
type Parameters struct {
	SnapTolerance     float64 `json:"snap_tol"`
	PlanarityDistance float64 `json:"planarity_d2p_tol"`
	PlanarityNormal   float64 `json:"planarity_n_tol"`
	OverlapTolerance  float64 `json:"overlap_tol"`
}

// Overview tabulates how many items of a type were validated and how many
// of them are valid.
type Overview struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
	Valid int    `json:"valid"`
}

// PrimitiveReport is the outcome of one primitive.
type PrimitiveReport struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Validity bool            `json:"validity"`
	Errors   []model.Finding `json:"errors"`
}

// FeatureReport is the outcome of one feature and its primitives.
type FeatureReport struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Validity   bool              `json:"validity"`
	Errors     []model.Finding   `json:"errors"`
	Primitives []PrimitiveReport `json:"primitives"`
}

// Report summarizes the validation of a dataset.
type Report struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	InputFile          string          `json:"input_file"`
	InputType          string          `json:"input_file_type"`
	Time               time.Time       `json:"time"`
	Parameters         Parameters      `json:"parameters"`
	PrimitivesOverview []Overview      `json:"primitives_overview"`
	FeaturesOverview   []Overview      `json:"features_overview"`
	Features           []FeatureReport `json:"features"`
	DatasetErrors      []model.Finding `json:"dataset_errors"`
	AllErrors          []model.Code    `json:"all_errors"`
	Validity           bool            `json:"validity"`
}

// NewReport reports on a validated dataset.
func NewReport(ds *model.Dataset, params Parameters) *Report {
	r := &Report{
		ID:            uuid.NewString(),
		Type:          ReportType,
		InputFile:     ds.InputFile,
		InputType:     ds.InputType,
		Time:          time.Now().UTC(),
		Parameters:    params,
		Features:      make([]FeatureReport, 0, len(ds.Features)),
		DatasetErrors: orEmpty(ds.Errors.Findings()),
		Validity:      ds.IsValid(),
	}

	codes := make(map[model.Code]struct{})
	model.MergeCodes(codes, ds.Errors.UniqueCodes())

	primitives := make(map[model.PrimitiveType]*Overview)
	features := make(map[string]*Overview)

	var featureTypes []string

	for _, f := range ds.Features {
		fr := FeatureReport{
			ID:         f.ID,
			Type:       f.Type,
			Validity:   f.IsValid(),
			Errors:     orEmpty(f.Errors.Findings()),
			Primitives: make([]PrimitiveReport, 0, len(f.Primitives)),
		}

		model.MergeCodes(codes, f.UniqueErrorCodes())

		for _, p := range f.Primitives {
			pr := PrimitiveReport{
				ID:       p.GetID(),
				Type:     p.Type().String(),
				Validity: p.IsValid(),
				Errors:   orEmpty(p.Findings()),
			}

			fr.Primitives = append(fr.Primitives, pr)

			o, ok := primitives[p.Type()]
			if !ok {
				o = &Overview{Type: pr.Type}
				primitives[p.Type()] = o
			}

			o.count(pr.Validity)
		}

		o, ok := features[f.Type]
		if !ok {
			o = &Overview{Type: f.Type}
			features[f.Type] = o
			featureTypes = append(featureTypes, f.Type)
		}

		o.count(fr.Validity)

		r.Features = append(r.Features, fr)
	}

	for _, t := range model.PrimitiveTypes() {
		if o, ok := primitives[t]; ok {
			r.PrimitivesOverview = append(r.PrimitivesOverview, *o)
		}
	}

	slices.Sort(featureTypes)
	for _, t := range featureTypes {
		r.FeaturesOverview = append(r.FeaturesOverview, *features[t])
	}

	r.AllErrors = model.SortedCodes(codes)

	return r
}

func (o *Overview) count(valid bool) {
	o.Total++
	if valid {
		o.Valid++
	}
}

// Totals sums an overview over every type.
func Totals(overviews []Overview) Overview {
	var t Overview
	for _, o := range overviews {
		t.Total += o.Total
		t.Valid += o.Valid
	}

	return t
}

func orEmpty(findings []model.Finding) []model.Finding {
	if findings == nil {
		return []model.Finding{}
	}

	return findings
}
