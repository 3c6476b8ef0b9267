package factory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

func TestRecipeRate_Purity(t *testing.T) {
	spec := newTestSpec(t)

	for _, key := range []string{"iron_ore", "limestone", "water", "crude_oil"} {
		t.Run(key, func(t *testing.T) {
			r := recipe(t, spec, key)
			miner := spec.Building(r)
			rate := rational.FromInt(90)

			normal, ok := spec.RecipeRate(r)
			require.True(t, ok)
			normalCount := spec.Count(r, rate)

			require.NoError(t, spec.SetMiner(r, miner, models.Pure))
			pure, _ := spec.RecipeRate(r)
			assert.True(t, pure.Equal(normal.Mul(rational.FromInt(2))), "pure doubles: %s vs %s", pure, normal)
			assert.True(t, spec.Count(r, rate).Equal(normalCount.Div(rational.FromInt(2))))

			require.NoError(t, spec.SetMiner(r, miner, models.Impure))
			impure, _ := spec.RecipeRate(r)
			assert.True(t, impure.Equal(normal.Mul(rational.Half)), "impure halves")
			assert.True(t, spec.Count(r, rate).Equal(normalCount.Mul(rational.FromInt(2))))
		})
	}
}

func TestCount_IsExact(t *testing.T) {
	spec := newTestSpec(t)
	screw := recipe(t, spec, "screw")

	// 6 s per craft at speed 1 -> 10 crafts/min.
	unit, ok := spec.RecipeRate(screw)
	require.True(t, ok)
	assert.Equal(t, "10", unit.String())

	count := spec.Count(screw, rational.New(7, 3))
	assert.Equal(t, "7/30", count.String(), "fractional counts are not rounded")
}

func TestIronIngotScenario(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")
	rate := rational.FromInt(30)

	unit, ok := spec.RecipeRate(ingot)
	require.True(t, ok)

	count := spec.Count(ingot, rate)
	assert.True(t, count.Equal(rate.Div(unit)))
	assert.Equal(t, "1", count.String())

	belts := spec.BeltCount(rate)
	assert.True(t, belts.Equal(rate.Div(spec.Belt().Rate)))
	assert.Equal(t, "1/2", belts.String())

	p := spec.PowerUsage(ingot, rate)
	assert.Equal(t, "4", p.Average.String())
	assert.Equal(t, "4", p.Peak.String())
}

func TestPowerUsage_PeakUsesCeil(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")

	// 45/min needs 3/2 smelters: average 6 MW, peak 2 smelters = 8 MW.
	p := spec.PowerUsage(ingot, rational.FromInt(45))
	assert.Equal(t, "6", p.Average.String())
	assert.Equal(t, "8", p.Peak.String())
}

func TestPowerUsage_Overclock(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")
	rate := rational.FromInt(30)

	base := spec.PowerUsage(ingot, rate)
	count := spec.Count(ingot, rate)
	smelter := spec.Building(ingot)

	require.NoError(t, spec.SetOverclock(ingot, rational.FromInt(2)))
	p := spec.PowerUsage(ingot, rate)

	factor := math.Pow(2.0, 1.6)
	wantPeak := smelter.Power.Float64() * count.Ceil().Float64() * factor
	assert.InDelta(t, wantPeak, p.Peak.Float64(), 1e-9)
	assert.InDelta(t, base.Average.Float64()*factor, p.Average.Float64(), 1e-9)
	assert.True(t, spec.Count(ingot, rate).Equal(count), "count is computed at 100% clock")
}

func TestPowerUsage_Ignored(t *testing.T) {
	spec := newTestSpec(t)
	ingot := recipe(t, spec, "iron_ingot")

	spec.ToggleIgnore(ingot)
	p := spec.PowerUsage(ingot, rational.FromInt(30))
	assert.True(t, p.Average.IsZero())
	assert.True(t, p.Peak.IsZero())

	spec.ToggleIgnore(ingot)
	assert.False(t, spec.PowerUsage(ingot, rational.FromInt(30)).Average.IsZero())
}

func TestPower_Add(t *testing.T) {
	a := Power{Average: rational.New(1, 2), Peak: rational.One}
	b := Power{Average: rational.New(1, 3), Peak: rational.One}
	sum := a.Add(b)
	assert.Equal(t, "5/6", sum.Average.String())
	assert.Equal(t, "2", sum.Peak.String())
}
