package viz

import "github.com/charmbracelet/lipgloss"

var (
	title  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	stable = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)
