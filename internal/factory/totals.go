package factory

import (
	"sort"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// Totals maps recipes to rates in executions per minute. Combining totals is
// associative and commutative.
type Totals struct {
	rates map[*models.Recipe]rational.Rational
}

// NewTotals returns empty totals
func NewTotals() *Totals {
	return &Totals{rates: make(map[*models.Recipe]rational.Rational)}
}

// Add adds rate to recipe
func (t *Totals) Add(recipe *models.Recipe, rate rational.Rational) {
	t.rates[recipe] = t.rates[recipe].Add(rate)
}

// Combine merges other into t
func (t *Totals) Combine(other *Totals) {
	if other == nil {
		return
	}
	for r, rate := range other.rates {
		t.Add(r, rate)
	}
}

// Rate returns the rate of recipe, zero if absent
func (t *Totals) Rate(recipe *models.Recipe) rational.Rational {
	return t.rates[recipe]
}

// Has reports whether recipe contributes to the totals
func (t *Totals) Has(recipe *models.Recipe) bool {
	_, ok := t.rates[recipe]
	return ok
}

// Len returns the number of distinct recipes
func (t *Totals) Len() int {
	return len(t.rates)
}

// Recipes returns the recipes ordered by key
func (t *Totals) Recipes() []*models.Recipe {
	out := make([]*models.Recipe, 0, len(t.rates))
	for r := range t.rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// ItemRate returns items per minute of item produced by the recipes in t
func (t *Totals) ItemRate(item *models.Item) rational.Rational {
	sum := rational.Zero
	for r, rate := range t.rates {
		if r.Product.Item == item {
			sum = sum.Add(rate.Mul(r.Product.Amount))
		}
	}
	return sum
}

// Consumption returns items per minute of item consumed as an ingredient
func (t *Totals) Consumption(item *models.Item) rational.Rational {
	sum := rational.Zero
	for r, rate := range t.rates {
		for _, ing := range r.Ingredients {
			if ing.Item == item {
				sum = sum.Add(rate.Mul(ing.Amount))
			}
		}
	}
	return sum
}

// Equal reports whether both totals hold the same recipes at the same rates
func (t *Totals) Equal(other *Totals) bool {
	if len(t.rates) != len(other.rates) {
		return false
	}
	for r, rate := range t.rates {
		o, ok := other.rates[r]
		if !ok || !o.Equal(rate) {
			return false
		}
	}
	return true
}
