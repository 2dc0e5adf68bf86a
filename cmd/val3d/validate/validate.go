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

package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"m4o.io/val3d"
	"m4o.io/val3d/cmd/val3d/cli"
	"m4o.io/val3d/internal/config"
	"m4o.io/val3d/internal/input"
	"m4o.io/val3d/internal/output"
	"m4o.io/val3d/model"
)

var out io.Writer = os.Stdout

const stdinName = "stdin"

func init() {
	cli.RootCmd.AddCommand(validateCmd)
	addFlags(validateCmd.Flags())
}

func addFlags(flags *pflag.FlagSet) {
	flags.BoolP("json", "j", false, "print the report in JSON")
	flags.BoolP("progress", "p", false, "show the progress of validation")
	flags.StringP("config", "f", "", "YAML file of settings")
	flags.StringP("report", "o", "", "also write the JSON report to this file, compressed by its extension")
	flags.Uint16P("cpu", "c", val3d.DefaultNCpu(), "number of CPUs to use for validation")
	flags.Float64("snap-tol", val3d.DefaultSnapTolerance, "distance within which vertices are welded")
	flags.Float64("planarity-d2p-tol", val3d.DefaultPlanarityDistance, "largest distance of a face point to the face plane")
	flags.Float64("planarity-n-tol", val3d.DefaultPlanarityNormal, "largest deviation of a vertex normal from the face normal, in degrees")
	flags.Float64("overlap-tol", val3d.DefaultOverlapTolerance, "shell self-intersection tolerance, negative to skip the test")
}

var validateCmd = &cobra.Command{
	Use:   "validate [<geometry dump>]",
	Short: "Validate the geometry of a dump",
	Long: "Validate the geometry of a dump, optionally compressed with gzip, zlib, zstd, lz4, xz or lzma.\n" +
		"The exit status is 1 when the dataset is not valid.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		valid, err := validate(cmd, args)
		if err != nil {
			log.Fatal(err)
		}

		if !valid {
			os.Exit(1)
		}
	},
}

// validate renders the report of the dump named by args, or of stdin, and
// reports whether it is valid. The input is closed and the progress bar
// finished on return.
func validate(cmd *cobra.Command, args []string) (bool, error) {
	flags := cmd.Flags()

	cfg, err := loadConfig(flags)
	if err != nil {
		return false, err
	}

	var in io.Reader = cmd.InOrStdin()

	name := stdinName
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return false, err
		}
		defer f.Close()

		in, name = f, args[0]
	}

	var progress val3d.ProgressFunc

	showProgress, err := flags.GetBool("progress")
	if err != nil {
		return false, err
	}

	if showProgress {
		bar := cli.NewProgressBar(cmd.ErrOrStderr())
		defer bar.Finish()

		progress = bar.Update
	}

	r, err := runValidate(cmd.Context(), in, name, cfg, progress)
	if err != nil {
		return false, err
	}

	jsonfmt, err := flags.GetBool("json")
	if err != nil {
		return false, err
	}

	if jsonfmt {
		renderJSON(r)
	} else {
		renderTxt(r)
	}

	report, err := flags.GetString("report")
	if err != nil {
		return false, err
	}

	if report != "" {
		if err := output.WriteJSONFile(report, r); err != nil {
			return false, err
		}
	}

	return r.Validity, nil
}

// loadConfig layers the flags set on the command line over the settings of
// the config file and the environment.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	for name, dst := range map[string]*float64{
		"snap-tol":          &cfg.Tolerances.Snap,
		"planarity-d2p-tol": &cfg.Tolerances.PlanarityDistance,
		"planarity-n-tol":   &cfg.Tolerances.PlanarityNormal,
		"overlap-tol":       &cfg.Tolerances.Overlap,
	} {
		if !flags.Changed(name) {
			continue
		}

		if *dst, err = flags.GetFloat64(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("cpu") {
		if cfg.Workers, err = flags.GetUint16("cpu"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runValidate reads and validates a dump. Input failures end up in the
// report; only a reader that cannot be decoded at all is an error.
func runValidate(ctx context.Context, in io.Reader, name string, cfg *config.Config, progress val3d.ProgressFunc) (*val3d.Report, error) {
	ds, err := input.Read(in, name, cfg.Tolerances.Snap)
	if ds == nil {
		return nil, err
	} else if err != nil {
		slog.Warn("input rejected", "input", name, "error", err)
	}

	opts := cfg.Options()
	if progress != nil {
		opts = append(opts, val3d.WithProgress(progress))
	}

	v, err := val3d.NewValidator(opts...)
	if errors.Is(err, val3d.ErrInvalidTolerance) {
		(&model.InputError{Code: model.WrongInputParameters, Info: "tolerances", Err: err}).Record(&ds.Errors)

		return val3d.NewReport(ds, val3d.Parameters{
			SnapTolerance:     cfg.Tolerances.Snap,
			PlanarityDistance: cfg.Tolerances.PlanarityDistance,
			PlanarityNormal:   cfg.Tolerances.PlanarityNormal,
			OverlapTolerance:  cfg.Tolerances.Overlap,
		}), nil
	} else if err != nil {
		return nil, err
	}

	return v.Validate(ctx, ds)
}

func renderJSON(r *val3d.Report) {
	if err := output.WriteJSON(out, r); err != nil {
		log.Fatal(err)
	}
}

func renderTxt(r *val3d.Report) {
	p := r.Parameters

	fmt.Fprintf(out, "Input: %s (%s)\n", r.InputFile, r.InputType)
	fmt.Fprintf(out, "Parameters: snap_tol=%s planarity_d2p_tol=%s planarity_n_tol=%s overlap_tol=%s\n",
		humanize.Ftoa(p.SnapTolerance), humanize.Ftoa(p.PlanarityDistance),
		humanize.Ftoa(p.PlanarityNormal), humanize.Ftoa(p.OverlapTolerance))

	renderOverview(out, "Features", r.FeaturesOverview)
	renderOverview(out, "Primitives", r.PrimitivesOverview)

	if len(r.DatasetErrors) > 0 {
		fmt.Fprintln(out, "Dataset errors:")
		renderFindings(out, "  ", r.DatasetErrors)
	}

	for _, f := range r.Features {
		if f.Validity {
			continue
		}

		fmt.Fprintf(out, "Invalid %s %s\n", f.Type, f.ID)
		renderFindings(out, "  ", f.Errors)

		for _, prim := range f.Primitives {
			if prim.Validity {
				continue
			}

			fmt.Fprintf(out, "  %s %s\n", prim.Type, prim.ID)
			renderFindings(out, "    ", prim.Errors)
		}
	}

	if len(r.AllErrors) > 0 {
		fmt.Fprint(out, "Errors:")
		for _, c := range r.AllErrors {
			fmt.Fprintf(out, " %d", c)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Valid: %t\n", r.Validity)
}

func renderOverview(w io.Writer, title string, overviews []val3d.Overview) {
	t := val3d.Totals(overviews)

	fmt.Fprintf(w, "%s: %s total, %s valid", title, humanize.Comma(int64(t.Total)), humanize.Comma(int64(t.Valid)))
	if t.Total > 0 {
		fmt.Fprintf(w, " (%s%%)", humanize.FtoaWithDigits(100*float64(t.Valid)/float64(t.Total), 1))
	}
	fmt.Fprintln(w)

	for _, o := range overviews {
		fmt.Fprintf(w, "  %s: %s total, %s valid\n", o.Type, humanize.Comma(int64(o.Total)), humanize.Comma(int64(o.Valid)))
	}
}

func renderFindings(w io.Writer, indent string, findings []model.Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "%s%d %s: %s\n", indent, f.Code, f.Description, f.Info)
	}
}
