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

// Package val3d validates 3D city model geometry: rings, polygons, shells,
// solids, composite solids and the features that own them.
package val3d

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/destel/rill"

	"m4o.io/val3d/internal/metrics"
	"m4o.io/val3d/internal/validator"
	"m4o.io/val3d/model"
)

// ErrInvalidTolerance is returned for a tolerance that cannot drive validation.
var ErrInvalidTolerance = errors.New("invalid tolerance")

// Validator validates datasets. A Validator may be shared by goroutines.
type Validator struct {
	cfg     *validatorOptions
	engine  *validator.Engine
	metrics *metrics.Collectors
	log     *slog.Logger
}

// NewValidator returns a new validator, configured with options.
func NewValidator(opts ...ValidatorOption) (*Validator, error) {
	cfg := defaultValidatorConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := checkTolerances(&cfg); err != nil {
		return nil, err
	}

	cfg.nCPU = max(cfg.nCPU, 1)

	log := cfg.logger
	if log == nil {
		log = slog.Default()
	}

	v := &Validator{
		cfg: &cfg,
		engine: validator.New(validator.Tolerances{
			Snap:            cfg.snapTol,
			PlanarityD2P:    cfg.planarityD2P,
			PlanarityNormal: cfg.planarityN,
			Overlap:         cfg.overlapTol,
		}, log),
		log: log,
	}

	if cfg.registerer != nil {
		v.metrics = metrics.New(cfg.registerer)
	}

	return v, nil
}

func checkTolerances(cfg *validatorOptions) error {
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"snap", cfg.snapTol},
		{"planarity distance", cfg.planarityD2P},
		{"planarity normal", cfg.planarityN},
	} {
		if math.IsNaN(t.value) || math.IsInf(t.value, 0) || t.value < 0 {
			return fmt.Errorf("%s tolerance %v: %w", t.name, t.value, ErrInvalidTolerance)
		}
	}

	if cfg.planarityN >= 180 {
		return fmt.Errorf("planarity normal tolerance %v: %w", cfg.planarityN, ErrInvalidTolerance)
	}

	if math.IsNaN(cfg.overlapTol) || math.IsInf(cfg.overlapTol, 0) {
		return fmt.Errorf("overlap tolerance %v: %w", cfg.overlapTol, ErrInvalidTolerance)
	}

	return nil
}

// Parameters returns the tolerances the validator runs with.
func (v *Validator) Parameters() Parameters {
	return Parameters{
		SnapTolerance:     v.cfg.snapTol,
		PlanarityDistance: v.cfg.planarityD2P,
		PlanarityNormal:   v.cfg.planarityN,
		OverlapTolerance:  v.cfg.overlapTol,
	}
}

// Validate validates every feature of the dataset, in parallel, and reports
// the outcome. Findings are recorded on the dataset itself; the returned
// error is only set when ctx is done before every feature was validated.
func (v *Validator) Validate(ctx context.Context, ds *model.Dataset) (*Report, error) {
	total := len(ds.Features)

	var done atomic.Int64

	features := rill.FromSlice(ds.Features, nil)
	validated := rill.OrderedMap(features, int(v.cfg.nCPU), func(f *model.Feature) (*model.Feature, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v.ValidateFeature(f)

		if v.cfg.progress != nil {
			v.cfg.progress(int(done.Add(1)), total)
		}

		return f, nil
	})

	if _, err := rill.ToSlice(validated); err != nil {
		slog.Error("unable to validate dataset", "input", ds.InputFile, "error", err)

		return nil, fmt.Errorf("validating %q: %w", ds.InputFile, err)
	}

	return NewReport(ds, v.Parameters()), nil
}

// ValidateFeature validates one feature and reports whether it is valid. A
// panic raised while validating is recorded as UNKNOWN_ERROR on the feature.
func (v *Validator) ValidateFeature(f *model.Feature) (valid bool) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			v.log.Error("unable to validate feature", "feature", f.ID, "panic", r)
			f.Errors.Add(model.UnknownError, fmt.Sprintf("feature %s: %v", f.ID, r))

			valid = false
		}

		v.metrics.ObserveFeature(f, time.Since(start))
	}()

	return v.engine.ValidateFeature(f)
}

// ValidatePrimitive validates a primitive that is not owned by a feature.
func (v *Validator) ValidatePrimitive(p model.Primitive) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error("unable to validate primitive", "primitive", p.GetID(), "panic", r)

			valid = false
			model.ErrorsOf(p).Add(model.UnknownError, fmt.Sprintf("primitive %s: %v", p.GetID(), r))
		}

		v.metrics.ObservePrimitive(p)
	}()

	return v.engine.ValidatePrimitive(p)
}
