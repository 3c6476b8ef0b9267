package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/napolitain/factory-planner/internal/settings"
	"github.com/napolitain/factory-planner/internal/store"
	"github.com/napolitain/factory-planner/internal/tui"
)

func newTUICmd() *cobra.Command {
	var planName, planFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive planner",
		Long: `Edit targets interactively. The solution is recomputed after every change.
Press s to save the current plan under --name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			db, err := store.NewConnection(&e.cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(db) }()
			repo := store.NewGormPlanRepository(db)

			if planFile != "" {
				plan, err := settings.LoadPlan(planFile)
				if err != nil {
					return err
				}
				if err := plan.Apply(e.spec); err != nil {
					return err
				}
			} else if saved, err := repo.FindByName(cmd.Context(), planName); err == nil {
				if err := settings.Apply(e.spec, saved.Settings); err != nil {
					return err
				}
			}

			save := func(fragment string) error {
				return repo.Save(cmd.Context(), planName, fragment)
			}
			_, err = tea.NewProgram(tui.New(e.spec, tui.WithSave(save)), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&planName, "name", "n", "default", "Saved plan to open and save to")
	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "YAML plan file to start from")
	return cmd
}
