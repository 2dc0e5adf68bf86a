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

// Package cli holds the root command and the helpers shared by subcommands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/val3d/internal/config"
)

var (
	logLevel slog.Level
	logJSON  bool
	envFile  string
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.Var(NewLevelValue(slog.LevelInfo, &logLevel, "level"), "log-level", "log level (debug, info, warn, error)")
	flags.BoolVar(&logJSON, "log-json", false, "log in JSON")
	flags.StringVar(&envFile, "env-file", ".env", "file of environment variables to load")
}

// RootCmd is the val3d command; subcommands register themselves on it.
var RootCmd = &cobra.Command{
	Use:   "val3d",
	Short: "Validate 3D city model geometry",
	Long:  "Validate the rings, polygons, shells and solids of 3D city models",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		level := logLevel
		if v, ok := os.LookupEnv(config.EnvLogLevel); ok && !cmd.Flags().Changed("log-level") {
			if err := level.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s=%q: %w", config.EnvLogLevel, v, err)
			}
		}

		slog.SetDefault(NewLogger(cmd.ErrOrStderr(), level, logJSON))

		return nil
	},
	SilenceUsage: true,
}

// NewLogger creates a logger writing text, or JSON, records of at least
// level to w.
func NewLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
