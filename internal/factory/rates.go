package factory

import (
	"math"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// OverclockExponent is the power law applied to overclocked buildings
const OverclockExponent = 1.6

// Power is the draw of a group of buildings in MW
type Power struct {
	Average rational.Rational
	Peak    rational.Rational
}

// Add returns the sum of two power draws
func (p Power) Add(o Power) Power {
	return Power{
		Average: p.Average.Add(o.Average),
		Peak:    p.Peak.Add(o.Peak),
	}
}

// RecipeRate returns the recipe executions per minute of a single building
// at 100% clock. ok is false when the recipe has no building.
func (s *Specification) RecipeRate(recipe *models.Recipe) (rate rational.Rational, ok bool) {
	building := s.Building(recipe)
	if building == nil {
		return rational.Zero, false
	}
	return building.RecipeRate(recipe, s.Purity(recipe)), true
}

// Count returns the exact, unrounded number of buildings needed to run
// recipe at rate executions per minute.
func (s *Specification) Count(recipe *models.Recipe, rate rational.Rational) rational.Rational {
	unit, ok := s.RecipeRate(recipe)
	if !ok {
		return rational.Zero
	}
	return rate.Div(unit)
}

// BeltCount returns how many default belts carry rate items per minute
func (s *Specification) BeltCount(rate rational.Rational) rational.Rational {
	return rate.Div(s.belt.Rate)
}

// PowerUsage returns the average and peak draw of the buildings running
// recipe at rate. Peak counts every partially used building at full draw.
func (s *Specification) PowerUsage(recipe *models.Recipe, rate rational.Rational) Power {
	building := s.Building(recipe)
	if building == nil || s.ignore[recipe] {
		return Power{Average: rational.Zero, Peak: rational.Zero}
	}
	count := s.Count(recipe, rate)
	average := building.Power.Mul(count)
	peak := building.Power.Mul(count.Ceil())
	if oc, ok := s.overclock[recipe]; ok {
		// The power law is irrational in general. With the factor bounded to
		// [0.01, 2.50] the float64 error is far below anything displayed.
		factor := rational.FromFloat(math.Pow(oc.Float64(), OverclockExponent))
		average = average.Mul(factor)
		peak = peak.Mul(factor)
	}
	return Power{Average: average, Peak: peak}
}
