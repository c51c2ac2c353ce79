package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldcalc/fieldcalc/internal/shapefile"
	"github.com/fieldcalc/fieldcalc/placed"
	"github.com/fieldcalc/fieldcalc/tier"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Scheme string // optional separate tier scheme file
	Only   string // inspect a single named shape
}

// InspectReport holds resolution results for every inspected shape.
type InspectReport struct {
	Shapes []ShapeReport `json:"shapes"`
	Errors int           `json:"errors"`
}

// ShapeReport is the resolution result for one shape entry.
type ShapeReport struct {
	Name   string `json:"name"`
	At     string `json:"at"`
	Shape  string `json:"shape"`
	Value  string `json:"value,omitempty"`
	P      string `json:"p,omitempty"`
	Q      string `json:"q,omitempty"`
	Active bool   `json:"active"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <shapes.yaml>",
		Short: "Resolve the placement of declared shapes",
		Long: `Resolve each shape in a shape file at its declared device tier.

For every shape the inferred placement is reported: the underlying value
shape, the tier set the value is defined on (p), the tier set neighbor data
may come from (q), and whether a device at the declared tier holds data.
Shapes that violate the placement rules are reported with the rule's error
code.

Example:
  fieldcalc inspect ./shapes.yaml
  fieldcalc inspect --scheme ./tiers.yaml --shape reading ./shapes.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scheme, "scheme", "", "tier scheme file (default: scheme section of the shape file)")
	cmd.Flags().StringVar(&opts.Only, "shape", "", "inspect only the named shape")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	file, err := loadShapeFile(opts.Scheme, path)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading shape file", err)
	}
	formatter.VerboseLog("Loaded %d shape(s) from %s", len(file.Shapes), path)

	entries := file.Shapes
	if opts.Only != "" {
		entries = nil
		for _, e := range file.Shapes {
			if e.Name == opts.Only {
				entries = append(entries, e)
			}
		}
		if len(entries) == 0 {
			err := fmt.Errorf("shape %q not declared in %s", opts.Only, path)
			_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
			return WrapExitError(ExitCommandError, "selecting shape", err)
		}
	}

	report := InspectReport{}
	for _, e := range entries {
		report.Shapes = append(report.Shapes, inspectEntry(file.Scheme, e))
	}
	for _, s := range report.Shapes {
		if s.Error != "" {
			report.Errors++
		}
	}
	slog.Debug("inspection finished", "shapes", len(report.Shapes), "errors", report.Errors)

	return outputInspectReport(formatter, report)
}

// loadShapeFile reads the shape file, taking the tier scheme from a separate
// file when one is given.
func loadShapeFile(schemePath, path string) (*shapefile.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shape file: %w", err)
	}
	if schemePath == "" {
		return shapefile.Load(data)
	}
	schemeData, err := os.ReadFile(schemePath)
	if err != nil {
		return nil, fmt.Errorf("read tier scheme: %w", err)
	}
	scheme, err := tier.LoadScheme(schemeData)
	if err != nil {
		return nil, err
	}
	return shapefile.Parse(scheme, data)
}

func inspectEntry(scheme *tier.Scheme, e shapefile.Entry) ShapeReport {
	r := ShapeReport{
		Name:  e.Name,
		At:    e.AtName,
		Shape: e.Shape.String(),
	}
	info, err := placed.Resolve(e.At, e.Shape)
	if err != nil {
		r.Error = err.Error()
		var pe *placed.Error
		if errors.As(err, &pe) {
			r.Code = string(pe.Code)
			r.Error = pe.Message
		}
		return r
	}
	r.Value = info.Value.String()
	r.P = scheme.Format(info.P)
	r.Q = scheme.Format(info.Q)
	r.Active = info.Placement(e.At).Active()
	return r
}

func outputInspectReport(formatter *OutputFormatter, report InspectReport) error {
	if formatter.Format == "json" {
		if report.Errors == 0 {
			if err := formatter.Success(report); err != nil {
				return err
			}
			return nil
		}
		first := firstError(report)
		if err := formatter.Error(first.Code, first.Error, report); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("inspection failed with %d error(s)", report.Errors))
	}

	for _, s := range report.Shapes {
		if s.Error != "" {
			fmt.Fprintf(formatter.Writer, "✗ %s: %s: %s\n", s.Name, s.Code, s.Error)
			continue
		}
		state := "inactive"
		if s.Active {
			state = "active"
		}
		fmt.Fprintf(formatter.Writer, "✓ %s: %s @ %s,%s (at %s, %s)\n",
			s.Name, s.Value, s.P, s.Q, s.At, state)
	}
	if report.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("inspection failed with %d error(s)", report.Errors))
	}
	return nil
}

func firstError(report InspectReport) ShapeReport {
	for _, s := range report.Shapes {
		if s.Error != "" {
			return s
		}
	}
	return ShapeReport{}
}
