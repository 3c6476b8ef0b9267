package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/factory-planner/internal/converter"
	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/rational"
	"github.com/napolitain/factory-planner/internal/settings"
	"github.com/napolitain/factory-planner/internal/store"
)

type solveOptions struct {
	planFile  string
	fragment  string
	belt      string
	alternate []string
	ignore    []string
	saveAs    string
	asJSON    bool
}

func newSolveCmd() *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve [item[:rate]...]",
		Short: "Solve production targets",
		Long: `Solve production targets given as item keys with optional rates in items
per minute, e.g. "planner solve screw:60 iron_plate:45/2". Targets may also come
from a YAML plan (--plan) or a settings string (--settings).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return runSolve(cmd.Context(), cmd.OutOrStdout(), e, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.planFile, "plan", "p", "", "YAML plan file")
	cmd.Flags().StringVarP(&opts.fragment, "settings", "s", "", "Settings string")
	cmd.Flags().StringVarP(&opts.belt, "belt", "b", "", "Belt used for belt counts")
	cmd.Flags().StringSliceVar(&opts.alternate, "alt", nil, "Alternate recipe keys to use")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "Recipe keys supplied externally")
	cmd.Flags().StringVar(&opts.saveAs, "save", "", "Save the resulting plan under this name")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the solution as JSON")
	return cmd
}

func runSolve(ctx context.Context, w io.Writer, e *env, opts *solveOptions, args []string) error {
	spec := e.spec

	if opts.planFile != "" {
		plan, err := settings.LoadPlan(opts.planFile)
		if err != nil {
			return err
		}
		if err := plan.Apply(spec); err != nil {
			return err
		}
	}
	if opts.fragment != "" {
		if err := settings.Apply(spec, opts.fragment); err != nil {
			return err
		}
	}
	if err := applyFlags(spec, opts, args); err != nil {
		return err
	}

	report := spec.BuildReport(spec.Solve())
	fragment := settings.Format(spec)

	if opts.saveAs != "" {
		if err := savePlan(ctx, e, opts.saveAs, fragment); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(converter.ReportToResponse(report, fragment))
	}

	printBanner(w)
	printReport(w, spec, report)
	if !quiet && fragment != "" {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprintf("\n🔗 Settings: %s", fragment))
	}
	if opts.saveAs != "" {
		fmt.Fprintln(w, color.New(color.FgGreen).Sprintf("✓ Saved plan %q", opts.saveAs))
	}
	return nil
}

func applyFlags(spec *factory.Specification, opts *solveOptions, args []string) error {
	if opts.belt != "" {
		if err := spec.SetBelt(opts.belt); err != nil {
			return err
		}
	}
	for _, key := range opts.alternate {
		r, err := spec.RecipeByKey(key)
		if err != nil {
			return err
		}
		spec.SetRecipe(r)
	}
	for _, key := range opts.ignore {
		r, err := spec.RecipeByKey(key)
		if err != nil {
			return err
		}
		spec.SetIgnored(r, true)
	}
	for _, arg := range args {
		item, rate, err := parseTargetArg(arg, spec.Defaults().Rate)
		if err != nil {
			return err
		}
		if _, err := spec.AddTargetRate(item, rate); err != nil {
			return err
		}
	}
	return nil
}

// parseTargetArg splits "item" or "item:rate"
func parseTargetArg(arg string, defaultRate rational.Rational) (string, rational.Rational, error) {
	item, rateStr, ok := strings.Cut(arg, ":")
	if item == "" {
		return "", rational.Zero, fmt.Errorf("invalid target %q", arg)
	}
	if !ok {
		return item, defaultRate, nil
	}
	rate, err := rational.Parse(rateStr)
	if err != nil {
		return "", rational.Zero, fmt.Errorf("invalid rate in %q: %w", arg, err)
	}
	return item, rate, nil
}

func savePlan(ctx context.Context, e *env, name, fragment string) error {
	db, err := store.NewConnection(&e.cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(db) }()
	return store.NewGormPlanRepository(db).Save(ctx, name, fragment)
}
