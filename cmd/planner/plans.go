package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/factory-planner/internal/settings"
	"github.com/napolitain/factory-planner/internal/store"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage saved plans",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save NAME SETTINGS",
			Short: "Save a settings string under NAME",
			Args:  cobra.ExactArgs(2),
			RunE:  withPlans(runPlanSave),
		},
		&cobra.Command{
			Use:     "show NAME",
			Aliases: []string{"load"},
			Short:   "Solve a saved plan",
			Args:    cobra.ExactArgs(1),
			RunE:    withPlans(runPlanShow),
		},
		&cobra.Command{
			Use:   "export NAME",
			Short: "Print a saved plan as YAML",
			Args:  cobra.ExactArgs(1),
			RunE:  withPlans(runPlanExport),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List saved plans",
			Args:  cobra.NoArgs,
			RunE:  withPlans(runPlanList),
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a saved plan",
			Args:  cobra.ExactArgs(1),
			RunE:  withPlans(runPlanDelete),
		},
	)
	return cmd
}

type planFunc func(cmd *cobra.Command, e *env, repo *store.GormPlanRepository, args []string) error

// withPlans opens the plan database around fn
func withPlans(fn planFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		db, err := store.NewConnection(&e.cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close(db) }()
		return fn(cmd, e, store.NewGormPlanRepository(db), args)
	}
}

func runPlanSave(cmd *cobra.Command, e *env, repo *store.GormPlanRepository, args []string) error {
	name, fragment := args[0], args[1]
	// reject strings that would not load back
	if err := settings.Apply(e.spec, fragment); err != nil {
		return err
	}
	if err := repo.Save(cmd.Context(), name, settings.Format(e.spec)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprintf("✓ Saved plan %q", name))
	return nil
}

func runPlanShow(cmd *cobra.Command, e *env, repo *store.GormPlanRepository, args []string) error {
	plan, err := repo.FindByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := settings.Apply(e.spec, plan.Settings); err != nil {
		return fmt.Errorf("plan %q: %w", plan.Name, err)
	}
	w := cmd.OutOrStdout()
	printBanner(w)
	printReport(w, e.spec, e.spec.BuildReport(e.spec.Solve()))
	return nil
}

func runPlanExport(cmd *cobra.Command, e *env, repo *store.GormPlanRepository, args []string) error {
	saved, err := repo.FindByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	plan, err := settings.ParseFragment(saved.Settings)
	if err != nil {
		return err
	}
	plan.Name = saved.Name
	out, err := plan.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runPlanList(cmd *cobra.Command, _ *env, repo *store.GormPlanRepository, _ []string) error {
	plans, err := repo.ListAll(cmd.Context())
	if err != nil {
		return err
	}
	printPlans(cmd.OutOrStdout(), plans)
	return nil
}

func runPlanDelete(cmd *cobra.Command, _ *env, repo *store.GormPlanRepository, args []string) error {
	if err := repo.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprintf("✓ Deleted plan %q", args[0]))
	return nil
}

func printPlans(w io.Writer, plans []*store.SavedPlan) {
	if len(plans) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No saved plans."))
		return
	}
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Name", "Updated", "Settings"}))
	for _, p := range plans {
		_ = table.Append([]string{p.Name, p.UpdatedAt.Format("2006-01-02 15:04"), p.Settings})
	}
	_ = table.Render()
}
