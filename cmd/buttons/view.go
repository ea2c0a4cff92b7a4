package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"

	colorAccent = colorPink
	colorFocus  = colorLavender
)

var (
	navStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface1).
			Padding(0, 1)
	navItemStyle = lipgloss.NewStyle().Padding(0, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginTop(1)
	bodyStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	buttonStyle  = lipgloss.NewStyle().
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay1).
			Padding(0, 1)
	focusedButtonStyle = buttonStyle.
				BorderForeground(colorFocus).
				Foreground(colorBase).
				Background(colorFocus)
	counterStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorOverlay1).MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
)

var navItems = []string{"Home", "About", "Contact"}

// View renders the page.
func (m Model) View() string {
	var b strings.Builder

	items := make([]string, len(navItems))
	for i, item := range navItems {
		items[i] = navItemStyle.Render(item)
	}
	b.WriteString(navStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...)))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(hobby))
	b.WriteString("\n\n")

	b.WriteString(m.row(firstButton, secondButton))
	b.WriteString("\n")
	b.WriteString(m.row(classButton, exampleButton, alphabetButton, hookButton))
	b.WriteString("\n")

	b.WriteString(counterStyle.Render(fmt.Sprintf("Counter: %d", m.count())))
	b.WriteString("\n")
	b.WriteString(m.row(decrementButton, incrementButton, messageButton))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(statusStyle.Render(errorStyle.Render(m.err.Error())))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ move  enter press  + - n shortcuts  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) row(ids ...buttonID) string {
	cells := make([]string, len(ids))
	for i, id := range ids {
		style := buttonStyle
		if id == m.focus {
			style = focusedButtonStyle
		}
		cells[i] = style.Render(m.label(id))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
