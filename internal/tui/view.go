package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the field.
func (f Field) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(f.title))

	line := lipgloss.JoinHorizontal(lipgloss.Left, f.input.View(), " ", unitStyle.Render(f.Unit()))
	sections = append(sections, line)

	if internalUnit := f.binding.InternalUnit(); internalUnit != "" {
		stored := f.binding.Format(f.internal, internalUnit)
		sections = append(sections, internalStyle.Render(fmt.Sprintf("stored: %s", stored)))
	}

	if f.err != nil {
		sections = append(sections, errorStyle.Render("✗ "+f.err.Error()))
	}

	help := []string{"enter commit", "↑/↓ step", "tab unit", "esc quit"}
	sections = append(sections, helpStyle.Render(strings.Join(help, " • ")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
