// Package render turns summaries and conversation details into terminal text.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/Zuo-Peng/ttsb/internal/manifest"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	audioMark    = "♪"
	reviewMark   = "★"
	defaultWidth = 80
	minBubble    = 20
)

type Options struct {
	Width    int  // panel width (0 = 80)
	Selected int  // selected turn index, -1 for none
	ShowMeta bool // expand metadata under the selected turn
}

// FormatTime renders seconds as m:ss.xx. Minutes are floored, so negative
// times keep a non-negative seconds part.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Sprint(seconds)
	}
	m := math.Floor(seconds / 60)
	s := seconds - m*60
	return fmt.Sprintf("%d:%05.2f", int(m), s)
}

// Card renders one conversation as a single list row of the given width.
func Card(s manifest.Summary, width int, selected, marked bool) string {
	prefix := "  "
	if selected {
		prefix = styleCardSelected.Render("> ")
	}
	mark := " "
	if marked {
		mark = styleAudio.Render(reviewMark)
	}

	meta := fmt.Sprintf("%3dt %8s", s.NumTurns, FormatTime(s.TotalDuration))
	if s.HasAudio() {
		meta += " " + audioMark
	} else {
		meta += "  "
	}

	idMax := width - 2 - 2 - runewidth.StringWidth(meta) - 1
	if idMax < 1 {
		idMax = 1
	}
	id := s.ConversationID
	if runewidth.StringWidth(id) > idMax {
		id = runewidth.Truncate(id, idMax, "…")
	}
	id = runewidth.FillRight(id, idMax)
	if selected {
		id = styleCardSelected.Render(id)
	}

	return prefix + mark + " " + id + " " + styleDim.Render(meta)
}

// Conversation renders the header and one chat bubble per turn. It also
// returns the line offset of each bubble so callers can scroll to a turn.
func Conversation(d *manifest.Detail, opts Options) (string, []int) {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	bubbleW := width * 3 / 4
	if bubbleW < minBubble {
		bubbleW = minBubble
	}

	var b strings.Builder
	lineCount := 0
	write := func(block string) {
		b.WriteString(block)
		b.WriteString("\n")
		lineCount += strings.Count(block, "\n") + 1
	}

	s := d.Summary
	write(styleTitle.Render("Conversation: " + s.ConversationID))
	info := fmt.Sprintf("%s / %s · %d turns · %s", s.UserSpeaker, s.AgentSpeaker, s.NumTurns, FormatTime(s.TotalDuration))
	if s.HasAudio() {
		info += " · " + styleAudio.Render(audioMark+" dialogue audio")
	}
	write(styleDim.Render(info))
	write(styleDim.Render(strings.Repeat("─", width)))

	if len(d.Turns) == 0 {
		write(styleDim.Render("(no turns)"))
		return b.String(), nil
	}

	offsets := make([]int, len(d.Turns))
	for i, t := range d.Turns {
		offsets[i] = lineCount
		selected := i == opts.Selected
		write(bubble(t, s, bubbleW, width, selected))
		if selected && opts.ShowMeta && len(t.Extra) > 0 {
			write(metadata(t, bubbleW, width))
		}
	}
	return b.String(), offsets
}

func bubble(t manifest.Turn, s manifest.Summary, bubbleW, width int, selected bool) string {
	nick := styleNickAgent.Render(s.AgentSpeaker)
	align := lipgloss.Right
	if t.IsUser() {
		nick = styleNickUser.Render(s.UserSpeaker)
		align = lipgloss.Left
	}

	inner := bubbleW - 2
	text := wordwrap.String(t.Text, inner)

	footer := FormatTime(t.StartTime)
	if t.HasAudio() {
		footer = styleAudio.Render(audioMark) + " " + footer
	}
	footer = lipgloss.PlaceHorizontal(inner, lipgloss.Right, styleDim.Render(footer))

	style := styleBubble.Width(bubbleW)
	if selected {
		style = style.BorderForeground(colorHighlight)
	}
	box := style.Render(lipgloss.JoinVertical(lipgloss.Left, nick, text, footer))
	return lipgloss.PlaceHorizontal(width, align, box)
}

func metadata(t manifest.Turn, bubbleW, width int) string {
	lines := make([]string, 0, len(t.Extra))
	for _, f := range t.Extra {
		lines = append(lines, wordwrap.String(f.Key+": "+f.Value, bubbleW-2))
	}
	align := lipgloss.Right
	if t.IsUser() {
		align = lipgloss.Left
	}
	box := styleMeta.Width(bubbleW).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, align, box)
}

// Placeholder is shown in place of a conversation whose detail failed to load.
func Placeholder(s manifest.Summary, err error, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("Conversation: "+s.ConversationID),
		"Details unavailable",
		styleDim.Render(wordwrap.String(err.Error(), width-4)),
	)
	return stylePlaceholder.Width(width - 2).Render(body)
}
