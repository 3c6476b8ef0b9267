package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/models"
)

func newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List items by tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), e.spec)
			return nil
		},
	}
}

func newRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes [item]",
		Short: "List recipes, optionally only those producing item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			var only *models.Item
			if len(args) == 1 {
				if only, err = e.spec.Item(args[0]); err != nil {
					return err
				}
			}
			printRecipes(cmd.OutOrStdout(), e.spec, only)
			return nil
		},
	}
}

func printItems(w io.Writer, spec *factory.Specification) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Tier", "Key", "Name", "Recipes"}))
	for _, tier := range spec.ItemTiers() {
		for _, item := range tier {
			_ = table.Append([]string{
				fmt.Sprintf("%d", item.Tier),
				item.Key,
				item.Name,
				fmt.Sprintf("%d", len(item.Recipes)),
			})
		}
	}
	_ = table.Render()
}

func printRecipes(w io.Writer, spec *factory.Specification, only *models.Item) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Key", "Product", "Ingredients", "Time (s)", "Building", "Per building/min"}))
	for _, key := range spec.Data().RecipeKeys() {
		r := spec.Data().Recipes[key]
		if only != nil && r.Product.Item != only {
			continue
		}

		building := "-"
		if b := spec.Building(r); b != nil {
			building = b.Name
		}
		perBuilding := "-"
		if rate, ok := spec.RecipeRate(r); ok {
			perBuilding = rate.Mul(r.Product.Amount).String()
		}

		_ = table.Append([]string{
			r.Key,
			fmt.Sprintf("%s × %s", r.Product.Amount, r.Product.Item.Name),
			formatIngredients(r.Ingredients),
			r.Time.String(),
			building,
			perBuilding,
		})
	}
	_ = table.Render()
}

func formatIngredients(ings []models.Ingredient) string {
	if len(ings) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ings))
	for _, ing := range ings {
		parts = append(parts, fmt.Sprintf("%s × %s", ing.Amount, ing.Item.Name))
	}
	return strings.Join(parts, ", ")
}
