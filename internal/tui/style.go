package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleSectionTitle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Bold(true)

	styleHero = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	styleMinion = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleMinionReady = styleMinion.
				BorderForeground(lipgloss.Color("34"))

	styleMinionShield = styleMinion.
				BorderForeground(lipgloss.Color("228"))

	styleCard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleCardPlayable = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Bold(true)

	styleLog = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleVictory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)
)
