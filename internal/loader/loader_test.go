package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/rational"
)

func TestLoadGameData(t *testing.T) {
	data, err := LoadGameData("../../data")
	require.NoError(t, err, "Failed to load game data")

	ingot := data.Items["iron_ingot"]
	require.NotNil(t, ingot)
	require.Len(t, ingot.Recipes, 2)
	assert.Equal(t, "iron_ingot", ingot.DefaultRecipe().Key, "first recipe in data order is the default")
	assert.Equal(t, "alt_pure_iron_ingot", ingot.Recipes[1].Key)

	leaves := data.Recipes["leaves"]
	require.NotNil(t, leaves)
	assert.False(t, leaves.HasBuilding())

	ore := data.Recipes["iron_ore"]
	assert.True(t, ore.IsExtraction())

	assert.Contains(t, data.Assemblers, "assembler1")
	assert.Contains(t, data.Smelters, "smelter2")
	assert.NotContains(t, data.Assemblers, "refinery")

	assert.Equal(t, []string{"belt1", "belt2", "belt3", "belt4", "belt5"}, data.BeltKeys())

	rip := data.Recipes["reinforced_iron_plate"]
	require.Len(t, rip.Ingredients, 2)
	assert.True(t, rip.Ingredients[1].Amount.Equal(rational.FromInt(12)))

	t.Logf("Loaded %d items, %d recipes, %d buildings", len(data.Items), len(data.Recipes), len(data.Buildings))
}

func TestParseGameData_Rationals(t *testing.T) {
	raw := []byte(`{
		"items": [{"key": "a", "tier": 0}],
		"recipes": [{"key": "a", "category": "crafting", "time": 2.5,
			"ingredients": [], "product": {"item": "a", "amount": "3/2"}}],
		"buildings": [{"key": "c", "category": "crafting", "power": 4, "speed": "1/2"}],
		"belts": [{"key": "b", "rate": 60}]
	}`)

	data, err := ParseGameData(raw)
	require.NoError(t, err)

	r := data.Recipes["a"]
	assert.True(t, r.Time.Equal(rational.New(5, 2)))
	assert.True(t, r.Product.Amount.Equal(rational.New(3, 2)))
	assert.True(t, data.Building("c").Speed.Equal(rational.Half))
	assert.Equal(t, "a", r.Name, "name defaults to key")
}

func TestParseGameData_IntegrityErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{`},
		{"unknown ingredient", `{"items":[{"key":"a"}],"recipes":[{"key":"a","category":null,
			"ingredients":[{"item":"zzz","amount":1}],"product":{"item":"a","amount":1}}]}`},
		{"category without building", `{"items":[{"key":"a"}],"recipes":[{"key":"a","category":"crafting",
			"product":{"item":"a","amount":1}}],"buildings":[]}`},
		{"duplicate recipe", `{"items":[{"key":"a"}],"recipes":[
			{"key":"a","category":null,"product":{"item":"a","amount":1}},
			{"key":"a","category":null,"product":{"item":"a","amount":1}}]}`},
		{"zero belt rate", `{"items":[],"recipes":[],"buildings":[],"belts":[{"key":"b","rate":0}]}`},
		{"miner without rate", `{"items":[],"recipes":[],"buildings":[{"key":"m","category":"mineral"}]}`},
		{"bad amount", `{"items":[{"key":"a"}],"recipes":[{"key":"a","category":null,
			"product":{"item":"a","amount":"lots"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameData([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadGameData_MissingDir(t *testing.T) {
	_, err := LoadGameData(t.TempDir())
	assert.Error(t, err)
}

func TestParseGameData_ItemWithoutRecipe(t *testing.T) {
	data, err := ParseGameData([]byte(`{"items":[{"key":"x","tier":4}],"recipes":[],"buildings":[],"belts":[]}`))
	require.NoError(t, err)
	assert.Empty(t, data.Items["x"].Recipes)
	assert.Nil(t, data.Items["x"].DefaultRecipe())
	assert.Equal(t, 4, data.Items["x"].Tier)
}
