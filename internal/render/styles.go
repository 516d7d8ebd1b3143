package render

import "github.com/charmbracelet/lipgloss"

var (
	colorUser      = lipgloss.Color("12")  // bright blue
	colorAgent     = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorError     = lipgloss.Color("9")   // bright red

	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleTitle = lipgloss.NewStyle().Bold(true)

	styleBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleNickUser  = lipgloss.NewStyle().Foreground(colorUser).Bold(true)
	styleNickAgent = lipgloss.NewStyle().Foreground(colorAgent).Bold(true)

	styleAudio = lipgloss.NewStyle().Foreground(colorHighlight)

	styleMeta = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorHighlight).
			Padding(0, 1)

	styleCardSelected = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)

	stylePlaceholder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorError).
				Padding(0, 1)
)
