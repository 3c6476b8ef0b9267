package factory

import (
	"github.com/napolitain/factory-planner/internal/expand"
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// Expander expands one target item into the recipe rates needed to make it
type Expander interface {
	Produce(s *Specification, item *models.Item, rate rational.Rational) *Totals
}

// RecursiveExpander walks the ingredient tree using the specification's
// active recipes and ignore set
type RecursiveExpander struct{}

func (RecursiveExpander) Produce(s *Specification, item *models.Item, rate rational.Rational) *Totals {
	totals := NewTotals()
	expand.Produce(s, totals, item, rate)
	return totals
}

// Solve expands every target in index order and merges the results.
// It reads but never mutates the specification.
func (s *Specification) Solve() *Totals {
	totals := NewTotals()
	for _, t := range s.targets {
		totals.Combine(s.expander.Produce(s, t.Item, t.Rate))
	}
	return totals
}
