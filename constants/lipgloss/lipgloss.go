package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	Info    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5DADE2"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D"))

	// BoxStyle frames the run summary.
	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5DADE2")).Padding(0, 1)
)
