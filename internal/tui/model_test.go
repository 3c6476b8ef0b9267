package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/loader"
)

func newModel(t *testing.T, opts ...Option) (*Model, *factory.Specification) {
	t.Helper()
	data, err := loader.LoadGameData("../../data")
	require.NoError(t, err)
	spec, err := factory.NewWithData(data)
	require.NoError(t, err)
	return New(spec, opts...), spec
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func TestModel_AddTargetFromPicker(t *testing.T) {
	m, spec := newModel(t)
	assert.Empty(t, m.Settings())

	// first item of the lowest tier
	press(m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	targets := spec.Targets()
	require.Len(t, targets, 1)
	assert.Equal(t, m.items[0].Key, targets[0].ItemKey)
	assert.Equal(t, "added "+targets[0].Item.Name, m.status)
	assert.NotEmpty(t, m.Report().Rows)
	assert.Contains(t, m.Settings(), "items="+targets[0].ItemKey+":r:60")
}

func TestModel_PickerNavigation(t *testing.T) {
	m, spec := newModel(t)

	press(m, runes("a"), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.pickerCursor)
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeTargets, m.mode)
	assert.Empty(t, spec.Targets())
}

func TestModel_EditRate(t *testing.T) {
	m, spec := newModel(t)
	_, err := spec.AddTarget("screw")
	require.NoError(t, err)

	press(m, runes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	press(m, runes("45/2x"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "45/2", spec.Targets()[0].Rate.String())
	assert.Equal(t, "items=screw:r:45/2", m.Settings())

	press(m, runes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("/"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Error(t, m.err)
	assert.Equal(t, "45/2", spec.Targets()[0].Rate.String())
}

func TestModel_RateStepAndRemove(t *testing.T) {
	m, spec := newModel(t)
	_, err := spec.AddTarget("wire")
	require.NoError(t, err)
	_, err = spec.AddTarget("cable")
	require.NoError(t, err)

	press(m, tea.KeyMsg{Type: tea.KeyDown}, runes("+"), runes("+"))
	assert.Equal(t, "70", spec.Targets()[1].Rate.String())

	for i := 0; i < 20; i++ {
		press(m, runes("-"))
	}
	assert.True(t, spec.Targets()[1].Rate.IsZero(), "rate stops at zero")

	press(m, runes("d"))
	require.Len(t, spec.Targets(), 1)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "removed Cable", m.status)
}

func TestModel_IgnoreAndBelt(t *testing.T) {
	m, spec := newModel(t)
	_, err := spec.AddTarget("iron_ingot")
	require.NoError(t, err)
	m.update()

	press(m, runes("i"))
	r, _ := spec.RecipeByKey("iron_ingot")
	assert.True(t, spec.IsIgnored(r))
	assert.Contains(t, m.Settings(), "ignore=iron_ingot")

	press(m, runes("b"))
	assert.Equal(t, "belt2", spec.Belt().Key)
	for i := 0; i < 4; i++ {
		press(m, runes("b"))
	}
	assert.Equal(t, "belt1", spec.Belt().Key, "cycles back to the slowest belt")
}

func TestModel_Save(t *testing.T) {
	var saved string
	m, spec := newModel(t, WithSave(func(s string) error {
		saved = s
		return nil
	}))
	_, err := spec.AddTarget("screw")
	require.NoError(t, err)
	m.update()

	press(m, runes("s"))
	assert.Equal(t, "items=screw:r:60", saved)
	assert.Equal(t, "saved", m.status)

	failing, _ := newModel(t, WithSave(func(string) error { return errors.New("disk full") }))
	press(failing, runes("s"))
	assert.EqualError(t, failing.err, "disk full")

	unset, _ := newModel(t)
	press(unset, runes("s"))
	assert.Equal(t, "saving is not configured", unset.status)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q does not quit from the item picker
	press(m, runes("a"))
	_, cmd = m.Update(runes("q"))
	assert.Nil(t, cmd)
}

func TestModel_View(t *testing.T) {
	m, spec := newModel(t)
	assert.Contains(t, m.View(), "no targets")

	_, err := spec.AddTarget("iron_plate")
	require.NoError(t, err)
	m.update()

	view := m.View()
	assert.Contains(t, view, "Iron Plate")
	assert.Contains(t, view, "Power:")
	assert.Contains(t, view, "#items=iron_plate:r:60")

	press(m, runes("a"))
	assert.Contains(t, m.View(), "tier 0")
}
