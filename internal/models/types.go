package models

import (
	"sort"

	"github.com/napolitain/factory-planner/internal/rational"
)

// Recipe categories known to the planner. Any other category resolves to the
// first building registered for it.
const (
	CategoryNone     = ""
	CategoryCrafting = "crafting"
	CategorySmelting = "smelting"
	CategoryMineral  = "mineral"
	CategoryOil      = "oil"
	CategoryWater    = "water"
)

var extractionCategories = map[string]bool{
	CategoryMineral: true,
	CategoryOil:     true,
	CategoryWater:   true,
}

// IsExtraction reports whether recipes of this category are produced by a miner
func IsExtraction(category string) bool {
	return extractionCategories[category]
}

// ExtractionCategories returns the extraction categories in deterministic order
func ExtractionCategories() []string {
	return []string{CategoryMineral, CategoryOil, CategoryWater}
}

// Item represents a producible item
type Item struct {
	Key  string
	Name string
	Tier int
	// Recipes that produce this item, in data order. The first is the default.
	Recipes []*Recipe
}

// DefaultRecipe returns the first recipe producing the item
func (i *Item) DefaultRecipe() *Recipe {
	if len(i.Recipes) == 0 {
		return nil
	}
	return i.Recipes[0]
}

// Ingredient is an amount of an item consumed or produced by one recipe execution
type Ingredient struct {
	Item   *Item
	Amount rational.Rational
}

// Recipe represents one way of producing an item
type Recipe struct {
	Key      string
	Name     string
	Category string
	// Time is the base duration of one execution in seconds.
	Time        rational.Rational
	Ingredients []Ingredient
	Product     Ingredient
}

// HasBuilding reports whether the recipe needs a building at all
func (r *Recipe) HasBuilding() bool {
	return r.Category != CategoryNone
}

// IsExtraction reports whether the recipe is produced by a miner
func (r *Recipe) IsExtraction() bool {
	return IsExtraction(r.Category)
}

// Building represents a building type able to run recipes of one category
type Building struct {
	Key      string
	Name     string
	Category string
	// Power is the draw in MW of one fully utilized instance.
	Power rational.Rational
	// Speed scales the recipe duration for processing buildings.
	Speed rational.Rational
	// BaseRate is the items/min output of a miner on a normal node.
	BaseRate rational.Rational
}

// IsMiner reports whether the building extracts resources
func (b *Building) IsMiner() bool {
	return IsExtraction(b.Category)
}

// RecipeRate returns recipe executions per minute for one instance at 100% clock
func (b *Building) RecipeRate(recipe *Recipe, purity Purity) rational.Rational {
	if b.IsMiner() {
		return b.BaseRate.Mul(purity.Factor).Div(recipe.Product.Amount)
	}
	return b.Speed.Mul(rational.FromInt(60)).Div(recipe.Time)
}

// Belt represents a conveyor tier
type Belt struct {
	Key  string
	Name string
	// Rate is items/min.
	Rate rational.Rational
}

// Purity represents the quality of a resource node
type Purity struct {
	Key    string
	Name   string
	Factor rational.Rational
}

var (
	Impure = Purity{Key: "0", Name: "Impure", Factor: rational.Half}
	Normal = Purity{Key: "1", Name: "Normal", Factor: rational.One}
	Pure   = Purity{Key: "2", Name: "Pure", Factor: rational.FromInt(2)}
)

// DefaultPurity is used for every miner setting created at load time
var DefaultPurity = Normal

// Purities returns all purities from worst to best
func Purities() []Purity {
	return []Purity{Impure, Normal, Pure}
}

// PurityByKey looks up a purity by key ("0", "1", "2") or name
func PurityByKey(key string) (Purity, bool) {
	for _, p := range Purities() {
		if p.Key == key || p.Name == key {
			return p, true
		}
	}
	return Purity{}, false
}

// MinerSetting is the miner and node purity selected for an extraction recipe
type MinerSetting struct {
	Miner  *Building
	Purity Purity
}

// GameData holds the immutable lookup tables of one game database
type GameData struct {
	Items      map[string]*Item
	Recipes    map[string]*Recipe
	Buildings  []*Building
	Belts      map[string]*Belt
	Assemblers map[string]*Building
	Smelters   map[string]*Building
}

// ItemKeys returns all item keys sorted
func (d *GameData) ItemKeys() []string {
	keys := make([]string, 0, len(d.Items))
	for k := range d.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RecipeKeys returns all recipe keys sorted
func (d *GameData) RecipeKeys() []string {
	keys := make([]string, 0, len(d.Recipes))
	for k := range d.Recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BeltKeys returns belt keys ordered by rate
func (d *GameData) BeltKeys() []string {
	keys := make([]string, 0, len(d.Belts))
	for k := range d.Belts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := d.Belts[keys[i]].Rate.Cmp(d.Belts[keys[j]].Rate); c != 0 {
			return c < 0
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Building returns the building with the given key
func (d *GameData) Building(key string) *Building {
	for _, b := range d.Buildings {
		if b.Key == key {
			return b
		}
	}
	return nil
}
