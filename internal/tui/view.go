package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/factory-planner/internal/converter"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Factory Planner"))
	b.WriteString("\n\n")

	if m.mode == modePicker {
		b.WriteString(m.pickerView())
	} else {
		b.WriteString(boxStyle.Render(m.targetsView()))
		b.WriteString("\n")
		b.WriteString(m.reportView())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.settings != "" {
		b.WriteString(dimStyle.Render("#" + m.settings))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help()))
	return b.String()
}

func (m *Model) targetsView() string {
	targets := m.spec.Targets()
	if len(targets) == 0 {
		return "no targets, press a to add one"
	}

	var lines []string
	for i, t := range targets {
		rate := t.Rate.String()
		if m.mode == modeRate && i == m.cursor {
			rate = m.input + "▏"
		}
		line := fmt.Sprintf("%d. %-24s %s/min", t.Index+1, t.Item.Name, rate)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) pickerView() string {
	var lines []string
	tier := -1
	for i, item := range m.items {
		if item.Tier != tier {
			tier = item.Tier
			lines = append(lines, dimStyle.Render(fmt.Sprintf("tier %d", tier)))
		}
		line := "  " + item.Name
		if i == m.pickerCursor {
			line = selectedStyle.Render("> " + item.Name)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) reportView() string {
	if m.report == nil || len(m.report.Rows) == 0 {
		return ""
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithHeader(converter.ReportHeader))
	for _, row := range converter.ReportTable(m.report) {
		_ = table.Append(row)
	}
	_ = table.Render()

	fmt.Fprintf(&buf, "Power: %s MW average, %s MW peak (belt: %s)\n",
		m.report.Power.Average.Decimal(1), m.report.Power.Peak.Decimal(1), m.spec.Belt().Name)
	return buf.String()
}
