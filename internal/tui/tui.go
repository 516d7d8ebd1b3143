package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zuo-Peng/ttsb/internal/browse"
	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/Zuo-Peng/ttsb/internal/play"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const debounceDelay = 200 * time.Millisecond

// Marker toggles review marks. *review.Store satisfies it.
type Marker interface {
	Toggle(ctx context.Context, conversationID string) (bool, error)
}

// Options wires the collaborators of a browsing session. Marker may be nil,
// in which case marking is disabled.
type Options struct {
	Player *play.Player
	Marker Marker
	Marks  map[string]bool
	Log    zerolog.Logger
}

// message types

type debounceTickMsg struct {
	key string
}

type playbackDoneMsg struct {
	gen int
	err error
}

type markToggledMsg struct {
	id     string
	marked bool
	err    error
}

// model

type model struct {
	session *browse.Session
	opts    Options
	marks   map[string]bool

	page       browse.Page
	cursor     int // index into page.Items
	listOffset int

	inputs      [numInputs]textinput.Model
	activeInput int // -1 when the list has focus

	detail    *manifest.Detail
	detailErr error
	turn      int
	showMeta  bool
	preview   viewport.Model
	offsets   []int

	playGen  int
	status   string
	statusOK bool

	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(session *browse.Session, opts Options) model {
	marks := opts.Marks
	if marks == nil {
		marks = make(map[string]bool)
	}
	if opts.Player == nil {
		opts.Player = &play.Player{}
	}
	return model{
		session:     session,
		opts:        opts,
		marks:       marks,
		page:        session.Page(),
		inputs:      newInputs(session.Criteria()),
		activeInput: -1,
		preview:     viewport.New(0, 0),
		statusOK:    true,
	}
}

// Run starts the browsing UI and blocks until it exits.
func Run(session *browse.Session, opts Options) error {
	m := newModel(session, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.opts.Player.Stop()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init triggers the detail load for the first conversation.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCurrentDetail())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.adjustListScroll(m.panelHeight())
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			m.opts.Player.Stop()
			return m, tea.Quit
		}
		if m.activeInput >= 0 {
			return m.updateFilters(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case debounceTickMsg:
		// Only apply if the inputs haven't changed since the tick was scheduled
		if msg.key == m.inputsKey() {
			cmds = append(cmds, m.applyCriteria())
		}
		return m, tea.Batch(cmds...)

	case detailLoadedMsg:
		s, ok := m.current()
		if !ok || s.ConversationID != msg.id {
			return m, nil // stale detail
		}
		m.detail, m.detailErr = msg.detail, msg.err
		m.turn, m.showMeta = 0, false
		if msg.err != nil {
			m.opts.Log.Warn().Err(msg.err).Str("conversation", msg.id).Msg("detail unavailable")
		}
		m.refreshPreview()
		return m, nil

	case playbackDoneMsg:
		if msg.gen != m.playGen {
			return m, nil
		}
		if msg.err != nil {
			m.setError(fmt.Errorf("playback: %w", msg.err))
		} else {
			m.setStatus("playback finished")
		}
		return m, nil

	case markToggledMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("mark %s: %w", msg.id, msg.err))
			return m, nil
		}
		if msg.marked {
			m.marks[msg.id] = true
			m.setStatus("marked " + msg.id)
		} else {
			delete(m.marks, msg.id)
			m.setStatus("unmarked " + msg.id)
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Focus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, keys.FocusBack):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, keys.Done):
		m.focusInput(-1)
		return m, nil
	}

	before := m.inputsKey()
	var cmd tea.Cmd
	m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
	cmds := []tea.Cmd{cmd}
	if after := m.inputsKey(); after != before {
		cmds = append(cmds, scheduleDebounce(after))
	}
	return m, tea.Batch(cmds...)
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Focus):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, keys.FocusBack):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustListScroll(m.panelHeight())
			return m, m.selectionChanged()
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.page.Items)-1 {
			m.cursor++
			m.adjustListScroll(m.panelHeight())
			return m, m.selectionChanged()
		}
		return m, nil

	case key.Matches(msg, keys.NextPage):
		return m, m.changePage(m.page.Index + 1)

	case key.Matches(msg, keys.PrevPage):
		return m, m.changePage(m.page.Index - 1)

	case key.Matches(msg, keys.NextTurn):
		if m.detail != nil && m.turn < len(m.detail.Turns)-1 {
			m.turn++
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, keys.PrevTurn):
		if m.detail != nil && m.turn > 0 {
			m.turn--
			m.refreshPreview()
		}
		return m, nil

	case key.Matches(msg, keys.Meta):
		m.showMeta = !m.showMeta
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, keys.PlayTurn):
		if m.detail == nil || m.turn >= len(m.detail.Turns) {
			return m, nil
		}
		return m, m.startPlayback(m.detail.Turns[m.turn].AudioPath, fmt.Sprintf("turn %d", m.turn+1))

	case key.Matches(msg, keys.PlayAll):
		s, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.startPlayback(s.WavPath, s.ConversationID)

	case key.Matches(msg, keys.Stop):
		m.playGen++
		m.opts.Player.Stop()
		m.setStatus("playback stopped")
		return m, nil

	case key.Matches(msg, keys.Mark):
		s, ok := m.current()
		if !ok {
			return m, nil
		}
		if m.opts.Marker == nil {
			m.setError(errors.New("review store unavailable"))
			return m, nil
		}
		return m, toggleMarkCmd(m.opts.Marker, s.ConversationID)

	case key.Matches(msg, keys.Copy):
		s, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(s.ConversationID); err != nil {
			m.setError(fmt.Errorf("clipboard: %w", err))
		} else {
			m.setStatus("copied " + s.ConversationID)
		}
		return m, nil

	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(m.panelHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(m.panelHeight() / 2)
		return m, nil
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	region, idx := m.hitTest(msg.X, msg.Y)

	switch {
	case region == regionList && msg.Button == tea.MouseButtonWheelUp:
		if m.listOffset > 0 {
			m.listOffset--
		}
		return m, nil

	case region == regionList && msg.Button == tea.MouseButtonWheelDown:
		maxOffset := len(m.page.Items) - m.panelHeight()
		if maxOffset < 0 {
			maxOffset = 0
		}
		if m.listOffset < maxOffset {
			m.listOffset++
		}
		return m, nil

	case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if idx >= 0 && idx < len(m.page.Items) && m.cursor != idx {
			m.focusInput(-1)
			m.cursor = idx
			m.adjustListScroll(m.panelHeight())
			return m, m.selectionChanged()
		}
		return m, nil

	case region == regionPreview && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if t := m.turnAtLine(m.preview.YOffset + idx); t >= 0 && t != m.turn {
			m.turn = t
			m.refreshPreview()
		}
		return m, nil

	case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyCriteria is the "criteria changed" event: it parses the inputs and
// replaces the session criteria wholesale.
func (m *model) applyCriteria() tea.Cmd {
	c, err := parseCriteria(m.inputValues(), m.session.Bounds())
	if err != nil {
		m.setError(err)
		return nil
	}
	m.setStatus("")
	m.showPage(m.session.SetCriteria(c))
	return m.selectionChanged()
}

// changePage is the "page changed" event.
func (m *model) changePage(idx int) tea.Cmd {
	if idx < 0 || idx >= m.page.TotalPages {
		return nil
	}
	m.showPage(m.session.SetPage(idx))
	return m.selectionChanged()
}

func (m *model) showPage(p browse.Page) {
	m.page = p
	m.cursor = 0
	m.listOffset = 0
}

// selectionChanged drops the old detail and fetches the new one.
func (m *model) selectionChanged() tea.Cmd {
	m.detail, m.detailErr = nil, nil
	m.turn, m.showMeta = 0, false
	m.refreshPreview()
	return m.loadCurrentDetail()
}

func (m model) loadCurrentDetail() tea.Cmd {
	s, ok := m.current()
	if !ok {
		return nil
	}
	return loadDetailCmd(s)
}

func (m model) current() (manifest.Summary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return manifest.Summary{}, false
	}
	return m.page.Items[m.cursor], true
}

func (m *model) startPlayback(path, label string) tea.Cmd {
	wait, err := m.opts.Player.Start(context.Background(), path)
	if err != nil {
		if errors.Is(err, play.ErrAudioUnavailable) {
			m.setStatus("no audio for " + label)
		} else {
			m.setError(err)
		}
		return nil
	}
	m.playGen++
	gen := m.playGen
	m.setStatus("playing " + label + " (" + filepath.Base(path) + ")")
	m.opts.Log.Debug().Str("audio", path).Msg("playback started")
	return func() tea.Msg {
		return playbackDoneMsg{gen: gen, err: wait()}
	}
}

func toggleMarkCmd(mk Marker, id string) tea.Cmd {
	return func() tea.Msg {
		marked, err := mk.Toggle(context.Background(), id)
		return markToggledMsg{id: id, marked: marked, err: err}
	}
}

func scheduleDebounce(key string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{key: key}
	})
}

func (m *model) setStatus(s string) {
	m.status, m.statusOK = s, true
}

func (m *model) setError(err error) {
	m.status, m.statusOK = err.Error(), false
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	filters := m.renderFilters()

	listBorder := styleActiveBorder
	if m.activeInput >= 0 {
		listBorder = stylePanelBorder
	}
	listPanel := listBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := stylePanelBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, filters, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 60% for preview, minus border padding
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract filter rows (2) + status bar (1) + borders (2) + slack
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and, for the list, an
// item index or, for the preview, a visible row.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 3 // filter rows (2) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY
	}

	if x > listBoxRight+1 {
		return regionPreview, relY
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("page %d/%d", m.page.Index+1, m.page.TotalPages))
	parts = append(parts, fmt.Sprintf("%d of %d", m.page.Matches, m.session.Len()))
	if m.status != "" {
		if m.statusOK {
			parts = append(parts, m.status)
		} else {
			parts = append(parts, styleStatusError.Render(m.status))
		}
	}
	parts = append(parts, "tab filters", "[ ] page", "n/N turn", "p/a play", "s stop", "i info", "m mark", "y copy", "esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
