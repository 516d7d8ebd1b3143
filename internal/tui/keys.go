package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Done      key.Binding
	NextTurn  key.Binding
	PrevTurn  key.Binding
	Meta      key.Binding
	PlayTurn  key.Binding
	PlayAll   key.Binding
	Stop      key.Binding
	Mark      key.Binding
	Copy      key.Binding
	PreviewUp key.Binding
	PreviewDn key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("dn/j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("]", "pgdown"),
		key.WithHelp("]", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("[", "pgup"),
		key.WithHelp("[", "prev page"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "filters"),
	),
	FocusBack: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "filters back"),
	),
	Done: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "back to list"),
	),
	NextTurn: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next turn"),
	),
	PrevTurn: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "prev turn"),
	),
	Meta: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "turn info"),
	),
	PlayTurn: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play turn"),
	),
	PlayAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "play dialogue"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	PreviewUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "preview up"),
	),
	PreviewDn: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "preview down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}
