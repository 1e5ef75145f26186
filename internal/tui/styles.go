package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	unitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	internalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
