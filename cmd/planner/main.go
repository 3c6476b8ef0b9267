package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/factory-planner/internal/config"
	"github.com/napolitain/factory-planner/internal/converter"
	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/loader"
	"github.com/napolitain/factory-planner/internal/logging"
)

var (
	configFile string
	dataDir    string
	quiet      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Factory production planner",
		Long: `Computes recipe rates, building counts, belts, and power for a set of
production targets, using exact rational arithmetic.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to planner.yaml")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(
		newSolveCmd(),
		newItemsCmd(),
		newRecipesCmd(),
		newPlanCmd(),
		newTUICmd(),
	)
	return rootCmd
}

// env is what every command needs: configuration and a specification over
// the loaded game data
type env struct {
	cfg  *config.Config
	spec *factory.Specification
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	logging.SetDefault("planner", cfg.Logging.Level, cfg.Logging.Format)

	data, err := loader.LoadGameData(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.Defaults.Factory()
	if err != nil {
		return nil, err
	}
	spec, err := factory.NewWithData(data, factory.WithDefaults(defaults))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize planner: %w", err)
	}
	return &env{cfg: cfg, spec: spec}, nil
}

func printBanner(w io.Writer) {
	if quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w, titleColor.Sprint("\n╭───────────────────────────╮"))
	fmt.Fprintln(w, titleColor.Sprint("│  Factory Planner          │"))
	fmt.Fprintln(w, titleColor.Sprint("╰───────────────────────────╯"))
	fmt.Fprintln(w)
}

// printReport writes the solution table, building totals, and power
func printReport(w io.Writer, spec *factory.Specification, report *factory.Report) {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if len(report.Rows) == 0 {
		fmt.Fprintln(w, infoColor.Sprint("Nothing to build: no targets."))
		return
	}

	table := tablewriter.NewTable(w, tablewriter.WithHeader(converter.ReportHeader))
	for _, row := range converter.ReportTable(report) {
		_ = table.Append(row)
	}
	_ = table.Render()

	if !quiet {
		fmt.Fprintln(w)
		buildings := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Building", "Count"}))
		for _, row := range converter.BuildingTable(report) {
			_ = buildings.Append(row)
		}
		_ = buildings.Render()
	}

	fmt.Fprintln(w, successColor.Sprintf("\n⚡ Power: %s MW average, %s MW peak",
		report.Power.Average.Decimal(2), report.Power.Peak.Decimal(2)))
	if !quiet {
		fmt.Fprintf(w, "   Belt: %s, assembler: %s, smelter: %s\n",
			spec.Belt().Name, spec.Assembler().Name, spec.Smelter().Name)
	}
}
