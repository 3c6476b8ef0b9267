package factory

import (
	"fmt"
	"sort"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// Overclock bounds, inclusive.
var (
	MinOverclock = rational.New(1, 100)
	MaxOverclock = rational.New(5, 2)
)

// Recipe returns the recipe used to produce item: the alternate recipe if
// one is selected, the item's first recipe otherwise.
func (s *Specification) Recipe(item *models.Item) *models.Recipe {
	if r, ok := s.altRecipes[item]; ok {
		return r
	}
	return item.DefaultRecipe()
}

// SetRecipe makes recipe the active recipe for its product. Selecting the
// product's default recipe clears the override.
func (s *Specification) SetRecipe(recipe *models.Recipe) {
	item := recipe.Product.Item
	if recipe == item.DefaultRecipe() {
		delete(s.altRecipes, item)
	} else {
		s.altRecipes[item] = recipe
	}
}

// MinerSetting returns the miner and purity of an extraction recipe
func (s *Specification) MinerSetting(recipe *models.Recipe) (models.MinerSetting, bool) {
	ms, ok := s.minerSettings[recipe]
	return ms, ok
}

// Purity returns the node purity of an extraction recipe
func (s *Specification) Purity(recipe *models.Recipe) models.Purity {
	return s.minerSettings[recipe].Purity
}

// SetMiner replaces the miner setting of an extraction recipe
func (s *Specification) SetMiner(recipe *models.Recipe, miner *models.Building, purity models.Purity) error {
	if !recipe.IsExtraction() {
		return fmt.Errorf("%w: %s", ErrNotExtraction, recipe.Key)
	}
	if miner == nil || miner.Category != recipe.Category {
		return fmt.Errorf("%w: no %s miner", ErrUnknownBuilding, recipe.Category)
	}
	s.minerSettings[recipe] = models.MinerSetting{Miner: miner, Purity: purity}
	return nil
}

// Overclock returns the overclock factor of recipe, 1 when not overridden
func (s *Specification) Overclock(recipe *models.Recipe) rational.Rational {
	if oc, ok := s.overclock[recipe]; ok {
		return oc
	}
	return rational.One
}

// SetOverclock stores an overclock factor for recipe. A factor of 1 clears
// the override; factors outside [MinOverclock, MaxOverclock] are rejected.
func (s *Specification) SetOverclock(recipe *models.Recipe, factor rational.Rational) error {
	if factor.Less(MinOverclock) || MaxOverclock.Less(factor) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrOverclockOutOfRange,
			factor.Decimal(2), MinOverclock.Decimal(2), MaxOverclock.Decimal(2))
	}
	if factor.Equal(rational.One) {
		delete(s.overclock, recipe)
	} else {
		s.overclock[recipe] = factor
	}
	return nil
}

// ToggleIgnore flips whether recipe's building and power are excluded
func (s *Specification) ToggleIgnore(recipe *models.Recipe) {
	s.SetIgnored(recipe, !s.ignore[recipe])
}

// SetIgnored sets whether recipe's building and power are excluded
func (s *Specification) SetIgnored(recipe *models.Recipe, ignored bool) {
	if ignored {
		s.ignore[recipe] = true
	} else {
		delete(s.ignore, recipe)
	}
}

// IsIgnored reports whether recipe is in the ignore set
func (s *Specification) IsIgnored(recipe *models.Recipe) bool {
	return s.ignore[recipe]
}

// RecipeOverclock pairs a recipe with its overclock factor
type RecipeOverclock struct {
	Recipe *models.Recipe
	Factor rational.Rational
}

// RecipeMiner pairs an extraction recipe with its miner setting
type RecipeMiner struct {
	Recipe  *models.Recipe
	Setting models.MinerSetting
}

// AltRecipes returns the selected alternate recipes, ordered by item key
func (s *Specification) AltRecipes() []*models.Recipe {
	out := make([]*models.Recipe, 0, len(s.altRecipes))
	for _, r := range s.altRecipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Product.Item.Key < out[j].Product.Item.Key
	})
	return out
}

// Overclocks returns all overclock overrides, ordered by recipe key
func (s *Specification) Overclocks() []RecipeOverclock {
	out := make([]RecipeOverclock, 0, len(s.overclock))
	for r, f := range s.overclock {
		out = append(out, RecipeOverclock{Recipe: r, Factor: f})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Recipe.Key < out[j].Recipe.Key
	})
	return out
}

// MinerSettings returns the miner setting of every extraction recipe,
// ordered by recipe key
func (s *Specification) MinerSettings() []RecipeMiner {
	out := make([]RecipeMiner, 0, len(s.minerSettings))
	for r, ms := range s.minerSettings {
		out = append(out, RecipeMiner{Recipe: r, Setting: ms})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Recipe.Key < out[j].Recipe.Key
	})
	return out
}

// Ignored returns the ignored recipes, ordered by key
func (s *Specification) Ignored() []*models.Recipe {
	out := make([]*models.Recipe, 0, len(s.ignore))
	for r := range s.ignore {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// IsDefaultMiner reports whether the setting equals the one created at load time
func (s *Specification) IsDefaultMiner(recipe *models.Recipe) bool {
	ms := s.minerSettings[recipe]
	return ms.Miner == s.buildings[recipe.Category][0] && ms.Purity.Key == models.DefaultPurity.Key
}
