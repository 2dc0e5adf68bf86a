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

// Package metrics exposes validation counters and latencies to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"m4o.io/val3d/model"
)

// Collectors groups the validation metrics.
type Collectors struct {
	FeaturesValidated   *prometheus.CounterVec
	PrimitivesValidated *prometheus.CounterVec
	Findings            *prometheus.CounterVec
	FeatureDuration     prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		FeaturesValidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "val3d_features_validated_total",
			Help: "Total number of validated features by type and validity",
		}, []string{"type", "valid"}),
		PrimitivesValidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "val3d_primitives_validated_total",
			Help: "Total number of validated primitives by type and validity",
		}, []string{"type", "valid"}),
		Findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "val3d_findings_total",
			Help: "Total number of recorded findings by error code and kind",
		}, []string{"code", "kind"}),
		FeatureDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "val3d_feature_validation_seconds",
			Help:    "Feature validation duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
	}

	if reg != nil {
		reg.MustRegister(c.FeaturesValidated)
		reg.MustRegister(c.PrimitivesValidated)
		reg.MustRegister(c.Findings)
		reg.MustRegister(c.FeatureDuration)
	}

	return c
}

// ObserveFeature records the outcome of one validated feature.
func (c *Collectors) ObserveFeature(f *model.Feature, elapsed time.Duration) {
	if c == nil {
		return
	}

	c.FeatureDuration.Observe(elapsed.Seconds())
	c.FeaturesValidated.WithLabelValues(f.Type, strconv.FormatBool(f.IsValid())).Inc()

	c.observeFindings(f.Errors.Findings())

	for _, p := range f.Primitives {
		c.ObservePrimitive(p)
	}
}

// ObservePrimitive records the outcome of one validated primitive.
func (c *Collectors) ObservePrimitive(p model.Primitive) {
	if c == nil {
		return
	}

	c.PrimitivesValidated.WithLabelValues(p.Type().String(), strconv.FormatBool(p.IsValid())).Inc()

	c.observeFindings(p.Findings())
}

// observeFindings counts findings by code, separating the input and dataset
// level ones from the geometric ones.
func (c *Collectors) observeFindings(findings []model.Finding) {
	for _, finding := range findings {
		kind := "geometry"
		if finding.Code.IsInput() {
			kind = "input"
		}

		c.Findings.WithLabelValues(strconv.Itoa(int(finding.Code)), kind).Inc()
	}
}
