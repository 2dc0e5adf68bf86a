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

// Package config loads the validator settings of the command line: defaults,
// then a YAML file, then VAL3D_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"m4o.io/val3d"
)

// Environment variables read by Load.
const (
	EnvSnapTolerance     = "VAL3D_SNAP_TOL"
	EnvPlanarityDistance = "VAL3D_PLANARITY_D2P_TOL"
	EnvPlanarityNormal   = "VAL3D_PLANARITY_N_TOL"
	EnvOverlapTolerance  = "VAL3D_OVERLAP_TOL"
	EnvWorkers           = "VAL3D_WORKERS"
	EnvLogLevel          = "VAL3D_LOG_LEVEL"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Config holds the settings of a validation run.
type Config struct {
	Tolerances TolerancesConfig `yaml:"tolerances"`

	// Workers is the number of features validated at once.
	Workers uint16 `yaml:"workers"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// TolerancesConfig mirrors the validator tolerances.
type TolerancesConfig struct {
	Snap              float64 `yaml:"snap_tol"`
	PlanarityDistance float64 `yaml:"planarity_d2p_tol"`
	PlanarityNormal   float64 `yaml:"planarity_n_tol"`
	Overlap           float64 `yaml:"overlap_tol"`
}

// DefaultConfig returns the validator defaults.
func DefaultConfig() *Config {
	return &Config{
		Tolerances: TolerancesConfig{
			Snap:              val3d.DefaultSnapTolerance,
			PlanarityDistance: val3d.DefaultPlanarityDistance,
			PlanarityNormal:   val3d.DefaultPlanarityNormal,
			Overlap:           val3d.DefaultOverlapTolerance,
		},
		Workers:  val3d.DefaultNCpu(),
		LogLevel: "info",
	}
}

// LoadDotEnv sets environment variables from the given .env files; missing
// files are skipped and variables already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// Load layers the YAML file at path, if not empty, and the environment over
// the defaults.
func Load(path string) (*Config, error) {
	c := DefaultConfig()

	if path != "" {
		if err := c.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// ApplyEnv overrides settings with the variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		name string
		dst  *float64
	}{
		{EnvSnapTolerance, &c.Tolerances.Snap},
		{EnvPlanarityDistance, &c.Tolerances.PlanarityDistance},
		{EnvPlanarityNormal, &c.Tolerances.PlanarityNormal},
		{EnvOverlapTolerance, &c.Tolerances.Overlap},
	}

	for _, f := range floats {
		v, ok := lookup(f.name)
		if !ok || v == "" {
			continue
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", f.name, v, ErrInvalidSetting)
		}

		*f.dst = x
	}

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 16)
		if err != nil || n == 0 {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, ErrInvalidSetting)
		}

		c.Workers = uint16(n)
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}

	return nil
}

// Level parses the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidSetting)
	}

	return l, nil
}

// Options converts the settings to validator options.
func (c *Config) Options() []val3d.ValidatorOption {
	return []val3d.ValidatorOption{
		val3d.WithSnapTolerance(c.Tolerances.Snap),
		val3d.WithPlanarityDistance(c.Tolerances.PlanarityDistance),
		val3d.WithPlanarityNormal(c.Tolerances.PlanarityNormal),
		val3d.WithOverlapTolerance(c.Tolerances.Overlap),
		val3d.WithNCpus(c.Workers),
	}
}
