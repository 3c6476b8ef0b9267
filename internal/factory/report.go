package factory

import (
	"sort"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// ReportRow is the resolved production of one recipe
type ReportRow struct {
	Recipe *models.Recipe
	Item   *models.Item
	// RecipeRate is executions per minute, ItemRate is product items per minute.
	RecipeRate rational.Rational
	ItemRate   rational.Rational
	// Building is nil for recipes without a building.
	Building  *models.Building
	Purity    *models.Purity
	Count     rational.Rational
	Belts     rational.Rational
	Overclock rational.Rational
	Ignored   bool
	Power     Power
}

// Report is the per-recipe breakdown of a solution
type Report struct {
	Rows  []ReportRow
	Power Power
}

// BuildReport resolves buildings, counts, belts, and power for totals.
// Rows are ordered from the highest item tier down, then by recipe key.
func (s *Specification) BuildReport(totals *Totals) *Report {
	report := &Report{Power: Power{Average: rational.Zero, Peak: rational.Zero}}

	for _, recipe := range totals.Recipes() {
		rate := totals.Rate(recipe)
		itemRate := rate.Mul(recipe.Product.Amount)
		row := ReportRow{
			Recipe:     recipe,
			Item:       recipe.Product.Item,
			RecipeRate: rate,
			ItemRate:   itemRate,
			Building:   s.Building(recipe),
			Count:      s.Count(recipe, rate),
			Belts:      s.BeltCount(itemRate),
			Overclock:  s.Overclock(recipe),
			Ignored:    s.IsIgnored(recipe),
			Power:      s.PowerUsage(recipe, rate),
		}
		if ms, ok := s.minerSettings[recipe]; ok {
			p := ms.Purity
			row.Purity = &p
		}
		report.Power = report.Power.Add(row.Power)
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Item.Tier > report.Rows[j].Item.Tier
	})
	return report
}

// Row returns the row of recipe
func (r *Report) Row(recipe *models.Recipe) (ReportRow, bool) {
	for _, row := range r.Rows {
		if row.Recipe == recipe {
			return row, true
		}
	}
	return ReportRow{}, false
}

// BuildingCounts sums the rounded-up building count per building key
func (r *Report) BuildingCounts() map[string]int64 {
	counts := make(map[string]int64)
	for _, row := range r.Rows {
		if row.Building == nil || row.Ignored {
			continue
		}
		counts[row.Building.Key] += int64(row.Count.Ceil().Float64())
	}
	return counts
}
