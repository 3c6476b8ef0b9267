package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// DataFile is the game database file name inside the data directory
const DataFile = "data.json"

// LoadGameData loads the game database from the data directory
func LoadGameData(dataDir string) (*models.GameData, error) {
	filePath := filepath.Join(dataDir, DataFile)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DataFile, err)
	}

	gameData, err := ParseGameData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DataFile, err)
	}
	return gameData, nil
}

// ParseGameData builds the lookup tables from a raw game database document.
// Any reference to an unknown item or a category without buildings is an error.
func ParseGameData(raw []byte) (*models.GameData, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	doc := gjson.ParseBytes(raw)

	items, err := parseItems(doc.Get("items"))
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecipes(doc.Get("recipes"), items)
	if err != nil {
		return nil, err
	}

	buildings, err := parseBuildings(doc.Get("buildings"))
	if err != nil {
		return nil, err
	}

	belts, err := parseBelts(doc.Get("belts"))
	if err != nil {
		return nil, err
	}

	data := &models.GameData{
		Items:      items,
		Recipes:    make(map[string]*models.Recipe, len(recipes)),
		Buildings:  buildings,
		Belts:      belts,
		Assemblers: make(map[string]*models.Building),
		Smelters:   make(map[string]*models.Building),
	}

	categories := make(map[string]bool)
	for _, b := range buildings {
		categories[b.Category] = true
		switch b.Category {
		case models.CategoryCrafting:
			data.Assemblers[b.Key] = b
		case models.CategorySmelting:
			data.Smelters[b.Key] = b
		}
	}

	// Recipes are attached to their product in data order so that the first
	// one listed becomes the item's default.
	for _, r := range recipes {
		if r.HasBuilding() && !categories[r.Category] {
			return nil, fmt.Errorf("recipe %s: no building for category %q", r.Key, r.Category)
		}
		data.Recipes[r.Key] = r
		r.Product.Item.Recipes = append(r.Product.Item.Recipes, r)
	}

	for _, key := range data.ItemKeys() {
		if len(items[key].Recipes) == 0 {
			slog.Warn("item has no recipe, it will be treated as a raw input", "item", key)
		}
	}

	return data, nil
}

func parseItems(v gjson.Result) (map[string]*models.Item, error) {
	items := make(map[string]*models.Item)
	var err error
	v.ForEach(func(_, it gjson.Result) bool {
		key := it.Get("key").String()
		if key == "" {
			err = fmt.Errorf("item without key: %s", it.Raw)
			return false
		}
		if _, dup := items[key]; dup {
			err = fmt.Errorf("duplicate item %s", key)
			return false
		}
		name := it.Get("name").String()
		if name == "" {
			name = key
		}
		items[key] = &models.Item{
			Key:  key,
			Name: name,
			Tier: int(it.Get("tier").Int()),
		}
		return true
	})
	return items, err
}

func parseRecipes(v gjson.Result, items map[string]*models.Item) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	seen := make(map[string]bool)
	var err error

	v.ForEach(func(_, rv gjson.Result) bool {
		key := rv.Get("key").String()
		if key == "" {
			err = fmt.Errorf("recipe without key: %s", rv.Raw)
			return false
		}
		if seen[key] {
			err = fmt.Errorf("duplicate recipe %s", key)
			return false
		}
		seen[key] = true

		recipe := &models.Recipe{
			Key:      key,
			Name:     rv.Get("name").String(),
			Category: rv.Get("category").String(),
		}
		if recipe.Name == "" {
			recipe.Name = key
		}

		if recipe.Time, err = readRational(rv, "time", rational.One); err != nil {
			err = fmt.Errorf("recipe %s: %w", key, err)
			return false
		}
		if recipe.Time.Sign() <= 0 {
			err = fmt.Errorf("recipe %s: time must be positive", key)
			return false
		}

		rv.Get("ingredients").ForEach(func(_, iv gjson.Result) bool {
			var ing models.Ingredient
			ing, err = readIngredient(iv, items)
			if err != nil {
				return false
			}
			recipe.Ingredients = append(recipe.Ingredients, ing)
			return true
		})
		if err != nil {
			err = fmt.Errorf("recipe %s: %w", key, err)
			return false
		}

		if recipe.Product, err = readIngredient(rv.Get("product"), items); err != nil {
			err = fmt.Errorf("recipe %s product: %w", key, err)
			return false
		}
		if recipe.Product.Amount.Sign() <= 0 {
			err = fmt.Errorf("recipe %s: product amount must be positive", key)
			return false
		}

		recipes = append(recipes, recipe)
		return true
	})
	return recipes, err
}

func readIngredient(v gjson.Result, items map[string]*models.Item) (models.Ingredient, error) {
	itemKey := v.Get("item").String()
	item, ok := items[itemKey]
	if !ok {
		return models.Ingredient{}, fmt.Errorf("unknown item %q", itemKey)
	}
	amount, err := readRational(v, "amount", rational.One)
	if err != nil {
		return models.Ingredient{}, err
	}
	return models.Ingredient{Item: item, Amount: amount}, nil
}

func parseBuildings(v gjson.Result) ([]*models.Building, error) {
	var buildings []*models.Building
	seen := make(map[string]bool)
	var err error

	v.ForEach(func(_, bv gjson.Result) bool {
		key := bv.Get("key").String()
		if key == "" || seen[key] {
			err = fmt.Errorf("building with missing or duplicate key %q", key)
			return false
		}
		seen[key] = true

		b := &models.Building{
			Key:      key,
			Name:     bv.Get("name").String(),
			Category: bv.Get("category").String(),
		}
		if b.Name == "" {
			b.Name = key
		}
		if b.Power, err = readRational(bv, "power", rational.Zero); err != nil {
			err = fmt.Errorf("building %s: %w", key, err)
			return false
		}
		if b.Speed, err = readRational(bv, "speed", rational.One); err != nil {
			err = fmt.Errorf("building %s: %w", key, err)
			return false
		}
		if b.BaseRate, err = readRational(bv, "base_rate", rational.Zero); err != nil {
			err = fmt.Errorf("building %s: %w", key, err)
			return false
		}
		if b.IsMiner() && b.BaseRate.Sign() <= 0 {
			err = fmt.Errorf("miner %s: base_rate must be positive", key)
			return false
		}
		if !b.IsMiner() && b.Speed.Sign() <= 0 {
			err = fmt.Errorf("building %s: speed must be positive", key)
			return false
		}

		buildings = append(buildings, b)
		return true
	})
	return buildings, err
}

func parseBelts(v gjson.Result) (map[string]*models.Belt, error) {
	belts := make(map[string]*models.Belt)
	var err error
	v.ForEach(func(_, bv gjson.Result) bool {
		key := bv.Get("key").String()
		if key == "" {
			err = fmt.Errorf("belt without key: %s", bv.Raw)
			return false
		}
		belt := &models.Belt{Key: key, Name: bv.Get("name").String()}
		if belt.Name == "" {
			belt.Name = key
		}
		if belt.Rate, err = readRational(bv, "rate", rational.Zero); err != nil {
			err = fmt.Errorf("belt %s: %w", key, err)
			return false
		}
		if belt.Rate.Sign() <= 0 {
			err = fmt.Errorf("belt %s: rate must be positive", key)
			return false
		}
		belts[key] = belt
		return true
	})
	return belts, err
}

// readRational accepts JSON numbers and strings like "5/2"; a missing field
// yields def.
func readRational(v gjson.Result, field string, def rational.Rational) (rational.Rational, error) {
	f := v.Get(field)
	if !f.Exists() || f.Type == gjson.Null {
		return def, nil
	}
	text := f.String()
	if f.Type == gjson.Number {
		// Raw keeps the exact decimal text.
		text = f.Raw
	}
	r, err := rational.Parse(text)
	if err != nil {
		return rational.Zero, fmt.Errorf("field %s: %w", field, err)
	}
	return r, nil
}
