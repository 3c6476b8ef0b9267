// Package factory is the production configuration and resolution engine.
//
// A Specification owns the game data tables, the overrides layered over the
// default building/recipe choices, and the ordered list of build targets.
// Rates, counts, and power are computed with exact rational arithmetic; the
// only approximation is the overclock power law in PowerUsage.
//
// A Specification is not safe for concurrent use. Callers mutate it one
// action at a time and call Solve between mutations.
package factory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

var (
	ErrNoData              = errors.New("no game data loaded")
	ErrUnknownItem         = errors.New("unknown item")
	ErrUnknownRecipe       = errors.New("unknown recipe")
	ErrUnknownBuilding     = errors.New("unknown building")
	ErrUnknownBelt         = errors.New("unknown belt")
	ErrNotExtraction       = errors.New("recipe is not an extraction recipe")
	ErrOverclockOutOfRange = errors.New("overclock out of range")
	ErrInvalidRate         = errors.New("rate must not be negative")
	ErrTargetNotFound      = errors.New("target not found")
	ErrIntegrity           = errors.New("game data integrity")
)

// Defaults are the choices in effect when nothing is overridden
type Defaults struct {
	Belt      string
	Assembler string
	Smelter   string
	Item      string
	Rate      rational.Rational
}

// DefaultDefaults returns belt1, assembler1, smelter1 and iron_ingot at 60/min
func DefaultDefaults() Defaults {
	return Defaults{
		Belt:      "belt1",
		Assembler: "assembler1",
		Smelter:   "smelter1",
		Item:      "iron_ingot",
		Rate:      rational.FromInt(60),
	}
}

// Specification is the mutable planner state: data tables, overrides, targets
type Specification struct {
	data      *models.GameData
	itemTiers [][]*models.Item
	// buildings by category, in data order
	buildings map[string][]*models.Building

	minerSettings map[*models.Recipe]models.MinerSetting
	overclock     map[*models.Recipe]rational.Rational
	altRecipes    map[*models.Item]*models.Recipe
	ignore        map[*models.Recipe]bool

	belt      *models.Belt
	assembler *models.Building
	smelter   *models.Building

	targets   []*BuildTarget
	listeners []TargetListener

	defaults Defaults
	expander Expander
}

// Option configures a Specification
type Option func(*Specification)

// WithDefaults replaces the default belt/assembler/smelter/item/rate
func WithDefaults(d Defaults) Option {
	return func(s *Specification) {
		s.defaults = d
	}
}

// WithExpander replaces the item expansion collaborator
func WithExpander(e Expander) Option {
	return func(s *Specification) {
		s.expander = e
	}
}

// New creates an empty specification. SetData must be called before use.
func New(opts ...Option) *Specification {
	s := &Specification{
		buildings:     make(map[string][]*models.Building),
		minerSettings: make(map[*models.Recipe]models.MinerSetting),
		overclock:     make(map[*models.Recipe]rational.Rational),
		altRecipes:    make(map[*models.Item]*models.Recipe),
		ignore:        make(map[*models.Recipe]bool),
		defaults:      DefaultDefaults(),
		expander:      RecursiveExpander{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewWithData is New followed by SetData
func NewWithData(data *models.GameData, opts ...Option) (*Specification, error) {
	s := New(opts...)
	if err := s.SetData(data); err != nil {
		return nil, err
	}
	return s, nil
}

// SetData installs a game database, replacing any previous one. Miner
// settings are rebuilt from scratch, overrides for recipes and items absent
// from the new data are dropped, and targets are rebound by item key.
func (s *Specification) SetData(data *models.GameData) error {
	if data == nil {
		return ErrNoData
	}

	buildings := make(map[string][]*models.Building)
	for _, b := range data.Buildings {
		buildings[b.Category] = append(buildings[b.Category], b)
	}
	for _, key := range data.RecipeKeys() {
		r := data.Recipes[key]
		if r.HasBuilding() && len(buildings[r.Category]) == 0 {
			return fmt.Errorf("%w: recipe %s has no building for category %q", ErrIntegrity, key, r.Category)
		}
	}
	if len(data.Belts) == 0 {
		return fmt.Errorf("%w: no belts", ErrIntegrity)
	}

	s.data = data
	s.buildings = buildings
	s.itemTiers = groupTiers(data)

	s.belt = data.Belts[s.defaults.Belt]
	if s.belt == nil {
		s.belt = data.Belts[data.BeltKeys()[0]]
	}
	s.assembler = pickDefault(data.Assemblers, s.defaults.Assembler, buildings[models.CategoryCrafting])
	s.smelter = pickDefault(data.Smelters, s.defaults.Smelter, buildings[models.CategorySmelting])

	s.initMinerSettings()
	s.pruneOverrides()
	s.rebindTargets()
	return nil
}

// Data returns the installed game database
func (s *Specification) Data() *models.GameData {
	return s.data
}

// Defaults returns the defaults the specification was created with
func (s *Specification) Defaults() Defaults {
	return s.defaults
}

// ItemTiers returns items grouped by tier, lowest tier first
func (s *Specification) ItemTiers() [][]*models.Item {
	return s.itemTiers
}

// Item looks up an item by key
func (s *Specification) Item(key string) (*models.Item, error) {
	if s.data == nil {
		return nil, ErrNoData
	}
	item, ok := s.data.Items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}
	return item, nil
}

// RecipeByKey looks up a recipe by key
func (s *Specification) RecipeByKey(key string) (*models.Recipe, error) {
	if s.data == nil {
		return nil, ErrNoData
	}
	recipe, ok := s.data.Recipes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, key)
	}
	return recipe, nil
}

// BuildingsFor returns the buildings registered for a category
func (s *Specification) BuildingsFor(category string) []*models.Building {
	return s.buildings[category]
}

func (s *Specification) initMinerSettings() {
	s.minerSettings = make(map[*models.Recipe]models.MinerSetting)
	for _, r := range s.data.Recipes {
		if r.IsExtraction() {
			s.minerSettings[r] = models.MinerSetting{
				Miner:  s.buildings[r.Category][0],
				Purity: models.DefaultPurity,
			}
		}
	}
}

func (s *Specification) pruneOverrides() {
	current := func(r *models.Recipe) bool {
		return s.data.Recipes[r.Key] == r
	}
	for r := range s.overclock {
		if !current(r) {
			delete(s.overclock, r)
		}
	}
	for r := range s.ignore {
		if !current(r) {
			delete(s.ignore, r)
		}
	}
	for item, r := range s.altRecipes {
		if s.data.Items[item.Key] != item || !current(r) {
			delete(s.altRecipes, item)
		}
	}
}

func (s *Specification) rebindTargets() {
	kept := s.targets[:0]
	var dropped []*BuildTarget
	for _, t := range s.targets {
		item, ok := s.data.Items[t.ItemKey]
		if !ok {
			dropped = append(dropped, t)
			continue
		}
		t.Item = item
		t.Index = len(kept)
		kept = append(kept, t)
	}
	s.targets = kept
	for _, t := range dropped {
		s.notifyRemoved(t)
	}
}

func pickDefault(candidates map[string]*models.Building, key string, ordered []*models.Building) *models.Building {
	if b, ok := candidates[key]; ok {
		return b
	}
	if len(ordered) > 0 {
		return ordered[0]
	}
	return nil
}

func groupTiers(data *models.GameData) [][]*models.Item {
	byTier := make(map[int][]*models.Item)
	for _, key := range data.ItemKeys() {
		item := data.Items[key]
		byTier[item.Tier] = append(byTier[item.Tier], item)
	}
	tiers := make([]int, 0, len(byTier))
	for t := range byTier {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)

	out := make([][]*models.Item, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, byTier[t])
	}
	return out
}
