package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/rational"
)

func TestSetOverclock_DefaultRemovesEntry(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")

	require.NoError(t, spec.SetOverclock(ingot, rational.New(3, 2)))
	assert.Len(t, spec.Overclocks(), 1)
	assert.Equal(t, "3/2", spec.Overclock(ingot).String())

	require.NoError(t, spec.SetOverclock(ingot, rational.One))
	assert.Empty(t, spec.Overclocks())
	assert.True(t, spec.Overclock(ingot).Equal(rational.One))

	// Clearing an override that does not exist is a no-op.
	require.NoError(t, spec.SetOverclock(ingot, rational.One))
	assert.Empty(t, spec.Overclocks())
}

func TestSetOverclock_Bounds(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")

	tests := []struct {
		factor rational.Rational
		ok     bool
	}{
		{rational.New(1, 100), true},
		{rational.New(5, 2), true},
		{rational.New(1, 1000), false},
		{rational.Zero, false},
		{rational.New(251, 100), false},
		{rational.FromInt(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.factor.String(), func(t *testing.T) {
			require.NoError(t, spec.SetOverclock(ingot, rational.New(3, 2)))
			err := spec.SetOverclock(ingot, tt.factor)
			if tt.ok {
				require.NoError(t, err)
				assert.True(t, spec.Overclock(ingot).Equal(tt.factor))
			} else {
				assert.ErrorIs(t, err, ErrOverclockOutOfRange)
				assert.Equal(t, "3/2", spec.Overclock(ingot).String(), "rejected value is never stored")
			}
		})
	}
}

func TestSetRecipe_DefaultClearsOverride(t *testing.T) {
	spec := newTestSpec(t)
	screw := item(t, spec, "screw")
	cast := recipe(t, spec, "alt_cast_screw")

	assert.Equal(t, screw.Recipes[0], spec.Recipe(screw))

	spec.SetRecipe(cast)
	assert.Equal(t, cast, spec.Recipe(screw))
	assert.Len(t, spec.AltRecipes(), 1)

	spec.SetRecipe(screw.Recipes[0])
	assert.Equal(t, screw.Recipes[0], spec.Recipe(screw))
	assert.Empty(t, spec.AltRecipes())

	// No prior override.
	spec.SetRecipe(screw.Recipes[0])
	assert.Empty(t, spec.AltRecipes())
}

func TestToggleIgnore_Symmetric(t *testing.T) {
	spec := newTestSpec(t)
	ore := recipe(t, spec, "iron_ore")

	spec.ToggleIgnore(ore)
	assert.True(t, spec.IsIgnored(ore))
	assert.Len(t, spec.Ignored(), 1)

	spec.ToggleIgnore(ore)
	assert.False(t, spec.IsIgnored(ore))
	assert.Empty(t, spec.Ignored())
}

func TestOverrideAccessors_Ordered(t *testing.T) {
	spec := newTestSpec(t)

	require.NoError(t, spec.SetOverclock(recipe(t, spec, "screw"), rational.FromInt(2)))
	require.NoError(t, spec.SetOverclock(recipe(t, spec, "iron_ingot"), rational.Half))
	spec.SetIgnored(recipe(t, spec, "water"), true)
	spec.SetIgnored(recipe(t, spec, "crude_oil"), true)
	spec.SetRecipe(recipe(t, spec, "alt_pure_iron_ingot"))
	spec.SetRecipe(recipe(t, spec, "alt_cast_screw"))

	ocs := spec.Overclocks()
	require.Len(t, ocs, 2)
	assert.Equal(t, "iron_ingot", ocs[0].Recipe.Key)
	assert.Equal(t, "screw", ocs[1].Recipe.Key)

	ignored := spec.Ignored()
	require.Len(t, ignored, 2)
	assert.Equal(t, "crude_oil", ignored[0].Key)

	alts := spec.AltRecipes()
	require.Len(t, alts, 2)
	assert.Equal(t, "alt_pure_iron_ingot", alts[0].Key)
	assert.Equal(t, "alt_cast_screw", alts[1].Key)

	miners := spec.MinerSettings()
	require.Len(t, miners, 5)
	assert.Equal(t, "copper_ore", miners[0].Recipe.Key)
}
