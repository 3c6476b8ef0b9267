// Package settings converts a planner state to and from its portable forms:
// the compact settings string used in links and saved plans, and YAML plan
// files.
package settings

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/factory-planner/internal/config"
	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// Plan is the serializable form of a specification's targets and overrides.
// Only values that differ from the defaults are present.
type Plan struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Targets []Target `yaml:"targets" json:"targets" validate:"dive"`

	// Alternates maps an item key to the recipe key that produces it.
	Alternates map[string]string `yaml:"alternates,omitempty" json:"alternates,omitempty"`
	Miners     []Miner           `yaml:"miners,omitempty" json:"miners,omitempty" validate:"dive"`
	// Overclock maps a recipe key to its clock factor, 1 is 100%.
	Overclock map[string]string `yaml:"overclock,omitempty" json:"overclock,omitempty" validate:"dive,rational"`
	Ignore    []string          `yaml:"ignore,omitempty" json:"ignore,omitempty"`

	Belt      string `yaml:"belt,omitempty" json:"belt,omitempty"`
	Assembler string `yaml:"assembler,omitempty" json:"assembler,omitempty"`
	Smelter   string `yaml:"smelter,omitempty" json:"smelter,omitempty"`
}

// Target is one production goal of a plan
type Target struct {
	Item string `yaml:"item" json:"item" validate:"required"`
	// Rate is items per minute.
	Rate string `yaml:"rate" json:"rate" validate:"required,rational"`
}

// Miner is a non-default miner setting of a plan
type Miner struct {
	Recipe string `yaml:"recipe" json:"recipe" validate:"required"`
	Miner  string `yaml:"miner" json:"miner" validate:"required"`
	// Purity is a purity key ("0", "1", "2") or name.
	Purity string `yaml:"purity" json:"purity" validate:"required"`
}

// LoadPlan reads and validates a YAML plan file
func LoadPlan(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}
	p, err := ParsePlan(raw)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// ParsePlan decodes and validates a YAML plan
func ParsePlan(raw []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// YAML encodes the plan
func (p *Plan) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks the plan's shape. Keys are resolved against game data
// only when the plan is applied.
func (p *Plan) Validate() error {
	return config.NewValidator().Validate(p)
}

// FromSpec captures the targets and overrides of spec
func FromSpec(spec *factory.Specification) *Plan {
	p := &Plan{}
	for _, t := range spec.Targets() {
		p.Targets = append(p.Targets, Target{Item: t.ItemKey, Rate: t.Rate.String()})
	}

	for _, r := range spec.AltRecipes() {
		if p.Alternates == nil {
			p.Alternates = make(map[string]string)
		}
		p.Alternates[r.Product.Item.Key] = r.Key
	}
	for _, m := range spec.MinerSettings() {
		if spec.IsDefaultMiner(m.Recipe) {
			continue
		}
		p.Miners = append(p.Miners, Miner{
			Recipe: m.Recipe.Key,
			Miner:  m.Setting.Miner.Key,
			Purity: m.Setting.Purity.Key,
		})
	}
	for _, oc := range spec.Overclocks() {
		if p.Overclock == nil {
			p.Overclock = make(map[string]string)
		}
		p.Overclock[oc.Recipe.Key] = oc.Factor.String()
	}
	for _, r := range spec.Ignored() {
		p.Ignore = append(p.Ignore, r.Key)
	}

	d := spec.Defaults()
	if b := spec.Belt(); b != nil && b.Key != d.Belt {
		p.Belt = b.Key
	}
	if b := spec.Assembler(); b != nil && b.Key != d.Assembler {
		p.Assembler = b.Key
	}
	if b := spec.Smelter(); b != nil && b.Key != d.Smelter {
		p.Smelter = b.Key
	}
	return p
}

// resolved is a plan with every key looked up, ready to apply without
// further failure points.
type resolved struct {
	targets    []resolvedTarget
	alternates []*models.Recipe
	miners     []resolvedMiner
	overclock  []factory.RecipeOverclock
	ignore     []*models.Recipe
}

type resolvedTarget struct {
	item string
	rate rational.Rational
}

type resolvedMiner struct {
	recipe *models.Recipe
	miner  *models.Building
	purity models.Purity
}

// Apply replaces the targets of spec with the plan's and applies its
// overrides. Every key is checked before spec is touched, so a plan that
// fails to resolve leaves spec unchanged.
func (p *Plan) Apply(spec *factory.Specification) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r, err := p.resolve(spec)
	if err != nil {
		return err
	}

	if p.Belt != "" {
		if err := spec.SetBelt(p.Belt); err != nil {
			return err
		}
	}
	if p.Assembler != "" {
		if err := spec.SetAssembler(p.Assembler); err != nil {
			return err
		}
	}
	if p.Smelter != "" {
		if err := spec.SetSmelter(p.Smelter); err != nil {
			return err
		}
	}
	for _, recipe := range r.alternates {
		spec.SetRecipe(recipe)
	}
	for _, m := range r.miners {
		if err := spec.SetMiner(m.recipe, m.miner, m.purity); err != nil {
			return err
		}
	}
	for _, oc := range r.overclock {
		if err := spec.SetOverclock(oc.Recipe, oc.Factor); err != nil {
			return err
		}
	}
	for _, recipe := range r.ignore {
		spec.SetIgnored(recipe, true)
	}

	spec.ClearTargets()
	for _, t := range r.targets {
		if _, err := spec.AddTargetRate(t.item, t.rate); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plan) resolve(spec *factory.Specification) (*resolved, error) {
	data := spec.Data()
	if data == nil {
		return nil, factory.ErrNoData
	}
	r := &resolved{}

	if p.Belt != "" && data.Belts[p.Belt] == nil {
		return nil, fmt.Errorf("%w: %s", factory.ErrUnknownBelt, p.Belt)
	}
	if p.Assembler != "" && data.Assemblers[p.Assembler] == nil {
		return nil, fmt.Errorf("%w: assembler %s", factory.ErrUnknownBuilding, p.Assembler)
	}
	if p.Smelter != "" && data.Smelters[p.Smelter] == nil {
		return nil, fmt.Errorf("%w: smelter %s", factory.ErrUnknownBuilding, p.Smelter)
	}

	for _, t := range p.Targets {
		if _, err := spec.Item(t.Item); err != nil {
			return nil, err
		}
		rate, err := rational.Parse(t.Rate)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Item, err)
		}
		if rate.Sign() < 0 {
			return nil, fmt.Errorf("target %s: %w", t.Item, factory.ErrInvalidRate)
		}
		r.targets = append(r.targets, resolvedTarget{item: t.Item, rate: rate})
	}

	for _, itemKey := range sortedKeys(p.Alternates) {
		recipe, err := spec.RecipeByKey(p.Alternates[itemKey])
		if err != nil {
			return nil, err
		}
		if recipe.Product.Item.Key != itemKey {
			return nil, fmt.Errorf("%w: %s does not produce %s", factory.ErrUnknownRecipe, recipe.Key, itemKey)
		}
		r.alternates = append(r.alternates, recipe)
	}

	for _, m := range p.Miners {
		recipe, err := spec.RecipeByKey(m.Recipe)
		if err != nil {
			return nil, err
		}
		if !recipe.IsExtraction() {
			return nil, fmt.Errorf("%w: %s", factory.ErrNotExtraction, recipe.Key)
		}
		miner := data.Building(m.Miner)
		if miner == nil || miner.Category != recipe.Category {
			return nil, fmt.Errorf("%w: miner %s for %s", factory.ErrUnknownBuilding, m.Miner, recipe.Key)
		}
		purity, ok := models.PurityByKey(m.Purity)
		if !ok {
			return nil, fmt.Errorf("unknown purity %q for %s", m.Purity, recipe.Key)
		}
		r.miners = append(r.miners, resolvedMiner{recipe: recipe, miner: miner, purity: purity})
	}

	for _, key := range sortedKeys(p.Overclock) {
		recipe, err := spec.RecipeByKey(key)
		if err != nil {
			return nil, err
		}
		factor, err := rational.Parse(p.Overclock[key])
		if err != nil {
			return nil, fmt.Errorf("overclock %s: %w", key, err)
		}
		if factor.Less(factory.MinOverclock) || factory.MaxOverclock.Less(factor) {
			return nil, fmt.Errorf("%w: %s for %s", factory.ErrOverclockOutOfRange, factor, key)
		}
		r.overclock = append(r.overclock, factory.RecipeOverclock{Recipe: recipe, Factor: factor})
	}

	for _, key := range p.Ignore {
		recipe, err := spec.RecipeByKey(key)
		if err != nil {
			return nil, err
		}
		r.ignore = append(r.ignore, recipe)
	}
	return r, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
