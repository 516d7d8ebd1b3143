package tui

import (
	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/Zuo-Peng/ttsb/internal/render"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailLoadedMsg is sent when an async detail load completes.
type detailLoadedMsg struct {
	id     string
	detail *manifest.Detail
	err    error
}

// loadDetailCmd returns a tea.Cmd that reads the conversation detail async.
func loadDetailCmd(s manifest.Summary) tea.Cmd {
	return func() tea.Msg {
		d, err := manifest.LoadDetail(s)
		return detailLoadedMsg{id: s.ConversationID, detail: d, err: err}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// refreshPreview re-renders the loaded conversation into the viewport.
func (m *model) refreshPreview() {
	switch {
	case m.detailErr != nil:
		s, _ := m.current()
		m.preview.SetContent(render.Placeholder(s, m.detailErr, m.previewWidth()))
		m.offsets = nil
		m.preview.GotoTop()
	case m.detail != nil:
		content, offsets := render.Conversation(m.detail, render.Options{
			Width:    m.previewWidth(),
			Selected: m.turn,
			ShowMeta: m.showMeta,
		})
		m.preview.SetContent(content)
		m.offsets = offsets
		m.scrollToTurn()
	default:
		m.preview.SetContent("")
		m.offsets = nil
	}
}

// scrollToTurn brings the selected bubble into view.
func (m *model) scrollToTurn() {
	if m.turn < 0 || m.turn >= len(m.offsets) {
		m.preview.GotoTop()
		return
	}
	top := m.offsets[m.turn]
	if m.turn == 0 {
		top = 0
	}
	if top < m.preview.YOffset || top >= m.preview.YOffset+m.preview.Height {
		m.preview.SetYOffset(top)
	}
}

// turnAtLine returns the turn whose bubble covers content line y, or -1 above
// the first bubble.
func (m model) turnAtLine(y int) int {
	turn := -1
	for i, off := range m.offsets {
		if off > y {
			break
		}
		turn = i
	}
	return turn
}
