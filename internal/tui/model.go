// Package tui is an interactive terminal planner built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
	"github.com/napolitain/factory-planner/internal/settings"
)

type mode int

const (
	modeTargets mode = iota
	modePicker
	modeRate
)

// rateStep is the amount +/- change a target rate by, items per minute
var rateStep = rational.FromInt(5)

// SaveFunc persists a settings string
type SaveFunc func(settings string) error

// Model is the bubbletea model of the planner
type Model struct {
	spec  *factory.Specification
	items []*models.Item
	save  SaveFunc

	mode         mode
	cursor       int
	pickerCursor int
	input        string

	report   *factory.Report
	settings string
	status   string
	err      error
}

// Option configures a Model
type Option func(*Model)

// WithSave enables the save key
func WithSave(fn SaveFunc) Option {
	return func(m *Model) {
		m.save = fn
	}
}

// New creates a model over spec and solves it once
func New(spec *factory.Specification, opts ...Option) *Model {
	m := &Model{spec: spec}
	for _, tier := range spec.ItemTiers() {
		m.items = append(m.items, tier...)
	}
	for _, opt := range opts {
		opt(m)
	}

	spec.Subscribe(factory.TargetListenerFuncs{
		Added: func(t *factory.BuildTarget) {
			m.status = fmt.Sprintf("added %s", t.Item.Name)
		},
		Removed: func(t *factory.BuildTarget) {
			m.status = fmt.Sprintf("removed %s", t.Item.Name)
		},
	})
	m.update()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modePicker:
		m.updatePicker(key)
	case modeRate:
		m.updateRate(key)
	default:
		if key.String() == "q" {
			return m, tea.Quit
		}
		m.updateTargets(key)
	}
	return m, nil
}

func (m *Model) updateTargets(key tea.KeyMsg) {
	targets := m.spec.Targets()
	m.err = nil

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(targets)-1 {
			m.cursor++
		}
	case "a":
		m.mode = modePicker
	case "d", "delete":
		if t, ok := m.spec.Target(m.cursor); ok {
			m.err = m.spec.RemoveTarget(t)
			if m.cursor >= len(m.spec.Targets()) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "+", "=":
		if t, ok := m.spec.Target(m.cursor); ok {
			m.err = m.spec.SetTargetRate(t, t.Rate.Add(rateStep))
		}
	case "-":
		if t, ok := m.spec.Target(m.cursor); ok {
			m.err = m.spec.SetTargetRate(t, rational.Max(rational.Zero, t.Rate.Sub(rateStep)))
		}
	case "e", "enter":
		if t, ok := m.spec.Target(m.cursor); ok {
			m.mode = modeRate
			m.input = t.Rate.String()
		}
	case "i":
		if t, ok := m.spec.Target(m.cursor); ok {
			r := m.spec.Recipe(t.Item)
			if r != nil {
				m.spec.ToggleIgnore(r)
			}
		}
	case "b":
		m.err = m.cycleBelt()
	case "s":
		m.saveSettings()
	}
	m.update()
}

func (m *Model) updatePicker(key tea.KeyMsg) {
	switch key.String() {
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "down", "j":
		if m.pickerCursor < len(m.items)-1 {
			m.pickerCursor++
		}
	case "esc":
		m.mode = modeTargets
	case "enter":
		m.mode = modeTargets
		if len(m.items) == 0 {
			return
		}
		if _, err := m.spec.AddTarget(m.items[m.pickerCursor].Key); err != nil {
			m.err = err
			return
		}
		m.cursor = len(m.spec.Targets()) - 1
		m.update()
	}
}

func (m *Model) updateRate(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeTargets
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEnter:
		m.mode = modeTargets
		rate, err := rational.Parse(m.input)
		if err != nil {
			m.err = fmt.Errorf("invalid rate %q", m.input)
			return
		}
		if t, ok := m.spec.Target(m.cursor); ok {
			m.err = m.spec.SetTargetRate(t, rate)
		}
		m.update()
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if (r >= '0' && r <= '9') || r == '/' || r == '.' {
				m.input += string(r)
			}
		}
	}
}

func (m *Model) cycleBelt() error {
	keys := m.spec.Data().BeltKeys()
	current := m.spec.Belt().Key
	for i, k := range keys {
		if k == current {
			return m.spec.SetBelt(keys[(i+1)%len(keys)])
		}
	}
	return nil
}

func (m *Model) saveSettings() {
	if m.save == nil {
		m.status = "saving is not configured"
		return
	}
	if err := m.save(m.settings); err != nil {
		m.err = err
		return
	}
	m.status = "saved"
}

// update re-solves the specification and refreshes the settings string
func (m *Model) update() {
	m.report = m.spec.BuildReport(m.spec.Solve())
	m.settings = settings.Format(m.spec)
}

// Settings returns the current settings string
func (m *Model) Settings() string {
	return m.settings
}

// Report returns the current report
func (m *Model) Report() *factory.Report {
	return m.report
}

func (m *Model) help() string {
	switch m.mode {
	case modePicker:
		return "↑/↓ choose item • enter add • esc cancel"
	case modeRate:
		return "type a rate (e.g. 45/2) • enter confirm • esc cancel"
	}
	return strings.Join([]string{
		"a add", "d remove", "+/- rate", "e edit", "i ignore", "b belt", "s save", "q quit",
	}, " • ")
}
