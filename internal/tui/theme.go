package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent     = lipgloss.Color("205")
	colorMuted      = lipgloss.Color("241")
	colorSelectedBg = lipgloss.Color("236")
	colorRead       = lipgloss.Color("42")
	colorDownloaded = lipgloss.Color("39")
	colorMissing    = lipgloss.Color("240")
	colorError      = lipgloss.Color("196")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleError = lipgloss.NewStyle().Foreground(colorError)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleCardSelected = styleCard.
				BorderForeground(colorAccent).
				Background(colorSelectedBg)

	styleFilterTab = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)

	styleFilterTabActive = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(colorAccent).
				Underline(true)

	styleSlotRead       = lipgloss.NewStyle().Foreground(colorRead)
	styleSlotDownloaded = lipgloss.NewStyle().Foreground(colorDownloaded)
	styleSlotMissing    = lipgloss.NewStyle().Foreground(colorMissing)
	styleSlotReading    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)
