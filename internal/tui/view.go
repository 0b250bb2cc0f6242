package tui

import (
	"fmt"
	"strings"

	"focushub/internal/core/timer"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth = 60
	taskPrefix   = 6
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(0, 0, 1, 0)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0, 0, 0)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Margin(2, 4)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View renders the dashboard.
func (m Model) View() string {
	if m.confirming {
		return m.renderConfirm()
	}

	accent := lipgloss.Color(m.core.Appearance.Palette().Primary)
	sections := []string{
		headerStyle.Render("FocusHub"),
		m.renderFocus(),
		m.renderModes(accent),
		m.renderTimer(accent),
		m.renderStats(),
		m.renderTasks(),
	}
	if m.input != inputNone {
		sections = append(sections, m.renderInput())
	}
	if m.toast != "" {
		sections = append(sections, toastStyle.BorderForeground(accent).Render(m.toast))
	}
	sections = append(sections, actionsStyle.Render(m.renderActions()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderConfirm() string {
	dialog := fmt.Sprintf("%s\n\n[Y]es / [Enter] / [N]o", m.confirmMessage)
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		confirmStyle.Render(dialog),
	)
}

func (m Model) renderFocus() string {
	return selectedStyle.Render(m.focus)
}

func (m Model) renderModes(accent lipgloss.Color) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(accent)
	names := make([]string, 0, len(m.modes))
	for i, mode := range m.modes {
		label := fmt.Sprintf("%d %s", i+1, mode.Name)
		if i == m.snapshot.ModeIndex {
			label = active.Render("[" + label + "]")
		} else {
			label = mutedStyle.Render(" " + label + " ")
		}
		names = append(names, label)
	}
	return strings.Join(names, " ")
}

func (m Model) renderTimer(accent lipgloss.Color) string {
	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Padding(1, 2).
		Render(m.snapshot.Display())

	state := "paused"
	if m.snapshot.State == timer.StateRunning {
		state = "running"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, clock, mutedStyle.Render(state))
}

func (m Model) renderStats() string {
	return fmt.Sprintf("Today: %d   Total: %d", m.stats.Today, m.stats.Total)
}

func (m Model) renderTasks() string {
	if len(m.tasks) == 0 {
		return mutedStyle.Render("No tasks yet. Press a to add one.")
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	textWidth := width - taskPrefix
	if textWidth < 10 {
		textWidth = 10
	}

	var lines []string
	for i, task := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ] "
		if task.Completed {
			check = "[x] "
		}
		text := runewidth.Truncate(task.Text, textWidth, "…")
		switch {
		case task.Completed:
			text = doneStyle.Render(text)
		case i == m.selected:
			text = selectedStyle.Render(text)
		}
		lines = append(lines, cursor+check+text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInput() string {
	label := "New task: "
	if m.input == inputFocus {
		label = "Focus: "
	}
	return label + m.inputText + "_"
}

func (m Model) renderActions() string {
	if m.input != inputNone {
		return "enter save • esc cancel"
	}
	return "space start/pause • r reset • n next • 1-9 mode • a add • x done • d delete • f focus • H clear history • q quit"
}
