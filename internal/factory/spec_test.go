package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/loader"
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

func newTestSpec(t *testing.T, opts ...Option) *Specification {
	t.Helper()

	data, err := loader.LoadGameData("../../data")
	require.NoError(t, err, "Failed to load game data")

	spec, err := NewWithData(data, opts...)
	require.NoError(t, err)
	return spec
}

func recipe(t *testing.T, s *Specification, key string) *models.Recipe {
	t.Helper()
	r, err := s.RecipeByKey(key)
	require.NoError(t, err)
	return r
}

func item(t *testing.T, s *Specification, key string) *models.Item {
	t.Helper()
	i, err := s.Item(key)
	require.NoError(t, err)
	return i
}

func TestSetData_Defaults(t *testing.T) {
	spec := newTestSpec(t)

	assert.Equal(t, "belt1", spec.Belt().Key)
	assert.Equal(t, "assembler1", spec.Assembler().Key)
	assert.Equal(t, "smelter1", spec.Smelter().Key)

	// Every extraction recipe has a miner setting with the first miner and
	// normal purity.
	for _, key := range spec.Data().RecipeKeys() {
		r := spec.Data().Recipes[key]
		ms, ok := spec.MinerSetting(r)
		assert.Equal(t, r.IsExtraction(), ok, "miner setting presence for %s", key)
		if ok {
			assert.Equal(t, spec.BuildingsFor(r.Category)[0], ms.Miner)
			assert.Equal(t, models.Normal.Key, ms.Purity.Key)
			assert.True(t, spec.IsDefaultMiner(r))
		}
	}
}

func TestSetData_MissingDefaultsFallBack(t *testing.T) {
	spec := newTestSpec(t, WithDefaults(Defaults{
		Belt:      "hyperloop",
		Assembler: "nope",
		Smelter:   "nope",
		Item:      "iron_ingot",
		Rate:      rational.FromInt(60),
	}))

	assert.Equal(t, "belt1", spec.Belt().Key, "slowest belt")
	assert.Equal(t, "assembler1", spec.Assembler().Key, "first crafting building")
	assert.Equal(t, "smelter1", spec.Smelter().Key, "first smelting building")
}

func TestSetData_ReplaceDropsOrphanedOverrides(t *testing.T) {
	spec := newTestSpec(t)

	ingot := recipe(t, spec, "iron_ingot")
	require.NoError(t, spec.SetOverclock(ingot, rational.FromInt(2)))
	spec.SetRecipe(recipe(t, spec, "alt_cast_screw"))
	spec.ToggleIgnore(recipe(t, spec, "iron_ore"))
	target, err := spec.AddTarget("screw")
	require.NoError(t, err)

	fresh, err := loader.LoadGameData("../../data")
	require.NoError(t, err)
	require.NoError(t, spec.SetData(fresh))

	assert.Empty(t, spec.Overclocks())
	assert.Empty(t, spec.AltRecipes())
	assert.Empty(t, spec.Ignored())

	targets := spec.Targets()
	require.Len(t, targets, 1)
	assert.Same(t, target, targets[0])
	assert.Same(t, fresh.Items["screw"], targets[0].Item, "target rebound to the new item")
}

func TestSetData_DropsTargetsForUnknownItems(t *testing.T) {
	spec := newTestSpec(t)
	_, err := spec.AddTarget("plastic")
	require.NoError(t, err)
	_, err = spec.AddTarget("iron_ingot")
	require.NoError(t, err)

	var removed []string
	spec.Subscribe(TargetListenerFuncs{Removed: func(bt *BuildTarget) {
		removed = append(removed, bt.ItemKey)
	}})

	small, err := loader.ParseGameData([]byte(`{
		"items": [{"key": "iron_ingot"}],
		"recipes": [{"key": "iron_ingot", "category": null, "product": {"item": "iron_ingot", "amount": 1}}],
		"buildings": [],
		"belts": [{"key": "belt1", "rate": 60}]
	}`))
	require.NoError(t, err)
	require.NoError(t, spec.SetData(small))

	targets := spec.Targets()
	require.Len(t, targets, 1)
	assert.Equal(t, "iron_ingot", targets[0].ItemKey)
	assert.Equal(t, 0, targets[0].Index)
	assert.Equal(t, []string{"plastic"}, removed)
}

func TestSetData_IntegrityErrors(t *testing.T) {
	assert.ErrorIs(t, New().SetData(nil), ErrNoData)

	item := &models.Item{Key: "a"}
	data := &models.GameData{
		Items: map[string]*models.Item{"a": item},
		Recipes: map[string]*models.Recipe{"a": {
			Key: "a", Category: "assembling", Time: rational.One,
			Product: models.Ingredient{Item: item, Amount: rational.One},
		}},
		Belts: map[string]*models.Belt{"b": {Key: "b", Rate: rational.FromInt(60)}},
	}
	assert.ErrorIs(t, New().SetData(data), ErrIntegrity)
}

func TestItemTiers(t *testing.T) {
	spec := newTestSpec(t)

	tiers := spec.ItemTiers()
	require.NotEmpty(t, tiers)
	for i := 1; i < len(tiers); i++ {
		assert.Less(t, tiers[i-1][0].Tier, tiers[i][0].Tier, "tiers ascending")
	}
	for _, tier := range tiers {
		for _, it := range tier {
			assert.Equal(t, tier[0].Tier, it.Tier)
		}
	}
}

func TestLookupErrors(t *testing.T) {
	spec := newTestSpec(t)

	_, err := spec.Item("unobtainium")
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = spec.RecipeByKey("unobtainium")
	assert.ErrorIs(t, err, ErrUnknownRecipe)

	_, err = New().Item("iron_ingot")
	assert.ErrorIs(t, err, ErrNoData)
}
