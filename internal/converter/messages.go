package converter

import (
	"fmt"
	"sort"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/rational"
)

// ReportToResponse converts a report to its wire form
func ReportToResponse(report *factory.Report, settings string) *SolveResponse {
	resp := &SolveResponse{
		Settings:  settings,
		Rows:      make([]RowDTO, 0, len(report.Rows)),
		Power:     PowerToDTO(report.Power),
		Buildings: report.BuildingCounts(),
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, RowToDTO(row))
	}
	return resp
}

// RowToDTO converts one report row
func RowToDTO(row factory.ReportRow) RowDTO {
	dto := RowDTO{
		Recipe:     row.Recipe.Key,
		Item:       row.Item.Key,
		RecipeRate: ToQuantity(row.RecipeRate),
		ItemRate:   ToQuantity(row.ItemRate),
		Count:      ToQuantity(row.Count),
		Belts:      ToQuantity(row.Belts),
		Overclock:  ToQuantity(row.Overclock),
		Ignored:    row.Ignored,
		Power:      PowerToDTO(row.Power),
	}
	if row.Building != nil {
		dto.Building = row.Building.Key
	}
	if row.Purity != nil {
		dto.Purity = row.Purity.Name
	}
	return dto
}

// PowerToDTO converts power usage
func PowerToDTO(p factory.Power) PowerDTO {
	return PowerDTO{Average: ToQuantity(p.Average), Peak: ToQuantity(p.Peak)}
}

// ItemsToResponse lists the items of spec by tier
func ItemsToResponse(spec *factory.Specification) *ItemsResponse {
	resp := &ItemsResponse{}
	for _, tier := range spec.ItemTiers() {
		var items []ItemDTO
		for _, item := range tier {
			dto := ItemDTO{Key: item.Key, Name: item.Name, Tier: item.Tier}
			for _, r := range item.Recipes {
				dto.Recipes = append(dto.Recipes, r.Key)
			}
			items = append(items, dto)
		}
		resp.Tiers = append(resp.Tiers, items)
	}
	return resp
}

// ReportHeader is the column header of ReportTable
var ReportHeader = []string{"Item", "Recipe", "Rate/min", "Building", "Count", "Belts", "Clock", "Power MW"}

// ReportTable renders report rows as display strings with decimal
// approximations
func ReportTable(report *factory.Report) [][]string {
	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		building := "-"
		if row.Building != nil {
			building = row.Building.Name
			if row.Purity != nil {
				building = fmt.Sprintf("%s (%s)", building, row.Purity.Name)
			}
		}
		power := formatQuantity(row.Power.Average)
		if row.Ignored {
			power = "ignored"
		}
		rows = append(rows, []string{
			row.Item.Name,
			row.Recipe.Name,
			formatQuantity(row.ItemRate),
			building,
			formatQuantity(row.Count),
			formatQuantity(row.Belts),
			formatPercent(row.Overclock),
			power,
		})
	}
	return rows
}

// BuildingTable renders per-building totals sorted by key
func BuildingTable(report *factory.Report) [][]string {
	counts := report.BuildingCounts()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%d", counts[k])})
	}
	return rows
}

func formatQuantity(r rational.Rational) string {
	if r.IsInteger() {
		return r.String()
	}
	return r.Decimal(3)
}

func formatPercent(r rational.Rational) string {
	return r.Mul(rational.FromInt(100)).Decimal(0) + "%"
}
