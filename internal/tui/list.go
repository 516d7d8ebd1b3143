package tui

import (
	"strings"

	"github.com/Zuo-Peng/ttsb/internal/render"
	"github.com/charmbracelet/lipgloss"
)

// renderList renders the current page of conversation cards, scrolled so the
// cursor stays visible.
func (m model) renderList(width, height int) string {
	items := m.page.Items
	if len(items) == 0 {
		msg := "No matching conversations"
		if m.session.Len() == 0 {
			msg = "Manifest has no conversations"
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	var lines []string
	for i, s := range items {
		if i < m.listOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, render.Card(s, width, i == m.cursor, m.marks[s.ConversationID]))
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	if listHeight < 1 {
		listHeight = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+listHeight {
		m.listOffset = m.cursor - listHeight + 1
	}
}
