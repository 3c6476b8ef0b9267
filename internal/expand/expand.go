// Package expand walks an item's ingredient tree and records the recipe
// rates needed to produce it.
package expand

import (
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// Chooser decides which recipe produces an item and which recipes are
// treated as externally supplied
type Chooser interface {
	Recipe(item *models.Item) *models.Recipe
	IsIgnored(recipe *models.Recipe) bool
}

// Sink accumulates recipe rates in executions per minute
type Sink interface {
	Add(recipe *models.Recipe, rate rational.Rational)
}

// Produce records every recipe needed to output rate items per minute of
// item. Ingredients of ignored recipes are not expanded. An item that is
// already being expanded higher up the tree is not expanded again, so
// recipe cycles terminate.
func Produce(c Chooser, sink Sink, item *models.Item, rate rational.Rational) {
	w := walker{chooser: c, sink: sink, path: make(map[*models.Item]bool)}
	w.produce(item, rate)
}

type walker struct {
	chooser Chooser
	sink    Sink
	path    map[*models.Item]bool
}

func (w *walker) produce(item *models.Item, rate rational.Rational) {
	if w.path[item] {
		return
	}
	recipe := w.chooser.Recipe(item)
	if recipe == nil {
		// raw input with no recipe
		return
	}

	recipeRate := rate.Div(recipe.Product.Amount)
	w.sink.Add(recipe, recipeRate)
	if w.chooser.IsIgnored(recipe) {
		return
	}

	w.path[item] = true
	for _, ing := range recipe.Ingredients {
		w.produce(ing.Item, ing.Amount.Mul(recipeRate))
	}
	delete(w.path, item)
}
