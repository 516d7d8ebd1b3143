package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorDim     = lipgloss.Color("240") // gray
	colorBorder  = lipgloss.Color("238") // dark gray
	colorError   = lipgloss.Color("9")   // bright red

	// Filter inputs
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorDim)

	styleFilterLabel = lipgloss.NewStyle().
				Foreground(colorDim).
				Width(9)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorError)
)
