package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")

	Screen = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 2)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Label   = lipgloss.NewStyle().Foreground(Subtext0)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Weight  = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Ready   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Message = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)
