// Package converter provides conversions between engine types and the wire
// and display forms used by the CLI, TUI, and HTTP API
package converter

import "github.com/napolitain/factory-planner/internal/rational"

// Quantity carries an exact fraction with its floating-point approximation
type Quantity struct {
	Exact string  `json:"exact"`
	Value float64 `json:"value"`
}

// PowerDTO is average and peak power in MW
type PowerDTO struct {
	Average Quantity `json:"average"`
	Peak    Quantity `json:"peak"`
}

// RowDTO is one recipe of a solution
type RowDTO struct {
	Recipe     string   `json:"recipe"`
	Item       string   `json:"item"`
	Building   string   `json:"building,omitempty"`
	Purity     string   `json:"purity,omitempty"`
	RecipeRate Quantity `json:"recipeRate"`
	ItemRate   Quantity `json:"itemRate"`
	Count      Quantity `json:"count"`
	Belts      Quantity `json:"belts"`
	Overclock  Quantity `json:"overclock"`
	Ignored    bool     `json:"ignored,omitempty"`
	Power      PowerDTO `json:"power"`
}

// SolveResponse is the wire form of a solved plan
type SolveResponse struct {
	// Settings is the settings string that reproduces the plan.
	Settings  string           `json:"settings"`
	Rows      []RowDTO         `json:"rows"`
	Power     PowerDTO         `json:"power"`
	Buildings map[string]int64 `json:"buildings"`
}

// ItemDTO is an item with the recipes that produce it
type ItemDTO struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Tier    int      `json:"tier"`
	Recipes []string `json:"recipes"`
}

// ItemsResponse lists items grouped by tier, lowest first
type ItemsResponse struct {
	Tiers [][]ItemDTO `json:"tiers"`
}

// ToQuantity converts a rational to its wire form
func ToQuantity(r rational.Rational) Quantity {
	return Quantity{Exact: r.String(), Value: r.Float64()}
}
