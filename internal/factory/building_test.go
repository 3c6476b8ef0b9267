package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

func TestBuilding_Resolution(t *testing.T) {
	spec := newTestSpec(t)

	tests := []struct {
		recipe   string
		building string
	}{
		{"iron_ore", "miner1"},
		{"water", "water_extractor"},
		{"crude_oil", "oil_extractor"},
		{"iron_ingot", "smelter1"},
		{"iron_plate", "assembler1"},
		{"plastic", "refinery"},
		{"alt_pure_iron_ingot", "refinery"},
	}
	for _, tt := range tests {
		t.Run(tt.recipe, func(t *testing.T) {
			b := spec.Building(recipe(t, spec, tt.recipe))
			require.NotNil(t, b)
			assert.Equal(t, tt.building, b.Key)
		})
	}
}

func TestBuilding_NoCategory(t *testing.T) {
	spec := newTestSpec(t)
	leaves := recipe(t, spec, "leaves")

	assert.Nil(t, spec.Building(leaves))

	_, ok := spec.RecipeRate(leaves)
	assert.False(t, ok)
	assert.True(t, spec.Count(leaves, rational.FromInt(100)).IsZero())

	for _, rate := range []int64{0, 1, 1000} {
		p := spec.PowerUsage(leaves, rational.FromInt(rate))
		assert.True(t, p.Average.IsZero())
		assert.True(t, p.Peak.IsZero())
	}
}

func TestBuilding_DefaultSelection(t *testing.T) {
	spec := newTestSpec(t)

	require.NoError(t, spec.SetAssembler("assembler2"))
	require.NoError(t, spec.SetSmelter("smelter2"))
	require.NoError(t, spec.SetBelt("belt3"))

	assert.Equal(t, "assembler2", spec.Building(recipe(t, spec, "screw")).Key)
	assert.Equal(t, "smelter2", spec.Building(recipe(t, spec, "copper_ingot")).Key)
	assert.Equal(t, "miner1", spec.Building(recipe(t, spec, "copper_ore")).Key, "miners are unaffected")
	assert.Equal(t, "belt3", spec.Belt().Key)

	assert.ErrorIs(t, spec.SetAssembler("smelter1"), ErrUnknownBuilding)
	assert.ErrorIs(t, spec.SetSmelter("assembler1"), ErrUnknownBuilding)
	assert.ErrorIs(t, spec.SetBelt("belt9"), ErrUnknownBelt)
	assert.Equal(t, "assembler2", spec.Assembler().Key, "failed selection keeps the previous one")
}

func TestBuilding_MinerSetting(t *testing.T) {
	spec := newTestSpec(t)
	ore := recipe(t, spec, "iron_ore")
	miner3 := spec.Data().Building("miner3")

	require.NoError(t, spec.SetMiner(ore, miner3, models.Pure))
	assert.Equal(t, miner3, spec.Building(ore))
	assert.Equal(t, models.Pure.Key, spec.Purity(ore).Key)
	assert.False(t, spec.IsDefaultMiner(ore))

	// Setting the defaults back still leaves an explicit setting in place.
	require.NoError(t, spec.SetMiner(ore, spec.Data().Building("miner1"), models.Normal))
	_, ok := spec.MinerSetting(ore)
	assert.True(t, ok)
	assert.True(t, spec.IsDefaultMiner(ore))

	err := spec.SetMiner(recipe(t, spec, "iron_ingot"), miner3, models.Pure)
	assert.ErrorIs(t, err, ErrNotExtraction)

	err = spec.SetMiner(ore, spec.Data().Building("water_extractor"), models.Pure)
	assert.ErrorIs(t, err, ErrUnknownBuilding)
	assert.Equal(t, "miner1", spec.Building(ore).Key)
}
