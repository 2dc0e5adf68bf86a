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
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultSnapTolerance is the default vertex welding distance.
	DefaultSnapTolerance = 0.001

	// DefaultPlanarityDistance is the default largest distance of a face
	// point to the face plane.
	DefaultPlanarityDistance = 0.01

	// DefaultPlanarityNormal is the default largest deviation of a vertex
	// normal from the face normal, in degrees.
	DefaultPlanarityNormal = 20.0

	// DefaultOverlapTolerance disables the shell self-intersection test.
	DefaultOverlapTolerance = -1.0
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// ProgressFunc is told how many of the total features were validated. It
// may be called from several goroutines at once.
type ProgressFunc func(done, total int)

// validatorOptions provides optional configuration parameters for Validator construction.
type validatorOptions struct {
	snapTol      float64 // vertex welding distance
	planarityD2P float64 // largest point to plane distance
	planarityN   float64 // largest normal deviation in degrees
	overlapTol   float64 // shell self-intersection tolerance, negative to disable
	nCPU         uint16  // the number of CPUs to use for validation
	progress     ProgressFunc
	registerer   prometheus.Registerer
	logger       *slog.Logger
}

// ValidatorOption configures how we set up the validator.
type ValidatorOption func(*validatorOptions)

// WithSnapTolerance lets you set the distance within which vertices are welded.
func WithSnapTolerance(tol float64) ValidatorOption {
	return func(o *validatorOptions) {
		o.snapTol = tol
	}
}

// WithPlanarityDistance lets you set the largest distance of a face point to
// the plane fitted through the face.
func WithPlanarityDistance(tol float64) ValidatorOption {
	return func(o *validatorOptions) {
		o.planarityD2P = tol
	}
}

// WithPlanarityNormal lets you set the largest deviation, in degrees, of a
// vertex normal from the face normal.
func WithPlanarityNormal(deg float64) ValidatorOption {
	return func(o *validatorOptions) {
		o.planarityN = deg
	}
}

// WithOverlapTolerance lets you set the tolerance of the shell
// self-intersection test. A negative value disables the test.
func WithOverlapTolerance(tol float64) ValidatorOption {
	return func(o *validatorOptions) {
		o.overlapTol = tol
	}
}

// WithNCpus lets you set the number of CPUs to use for validation.
func WithNCpus(n uint16) ValidatorOption {
	return func(o *validatorOptions) {
		o.nCPU = n
	}
}

// WithProgress lets you follow the validation of a dataset.
func WithProgress(f ProgressFunc) ValidatorOption {
	return func(o *validatorOptions) {
		o.progress = f
	}
}

// WithRegisterer lets you publish validation metrics to a Prometheus registry.
func WithRegisterer(reg prometheus.Registerer) ValidatorOption {
	return func(o *validatorOptions) {
		o.registerer = reg
	}
}

// WithLogger lets you set the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) ValidatorOption {
	return func(o *validatorOptions) {
		o.logger = l
	}
}

// defaultValidatorConfig provides a default configuration for validators.
var defaultValidatorConfig = validatorOptions{
	snapTol:      DefaultSnapTolerance,
	planarityD2P: DefaultPlanarityDistance,
	planarityN:   DefaultPlanarityNormal,
	overlapTol:   DefaultOverlapTolerance,
	nCPU:         DefaultNCpu(),
}
