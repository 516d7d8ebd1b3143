package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/ttsb/internal/browse"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	inputMinTurns = iota
	inputMaxTurns
	inputMinDuration
	inputMaxDuration
	numInputs
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "["
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 12
	ti.Width = 8
	return ti
}

func newInputs(c browse.Criteria) [numInputs]textinput.Model {
	inputs := [numInputs]textinput.Model{
		newInput("min"),
		newInput("max"),
		newInput("min"),
		newInput("max"),
	}
	inputs[inputMinTurns].SetValue(strconv.Itoa(c.MinTurns))
	inputs[inputMaxTurns].SetValue(strconv.Itoa(c.MaxTurns))
	inputs[inputMinDuration].SetValue(formatSeconds(c.MinDuration))
	inputs[inputMaxDuration].SetValue(formatSeconds(c.MaxDuration))
	return inputs
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseCriteria reads the four bound inputs. An empty input falls back to
// the collection bound for that side.
func parseCriteria(values [numInputs]string, bounds browse.Criteria) (browse.Criteria, error) {
	c := bounds
	var err error
	if c.MinTurns, err = parseInt(values[inputMinTurns], bounds.MinTurns, "min turns"); err != nil {
		return browse.Criteria{}, err
	}
	if c.MaxTurns, err = parseInt(values[inputMaxTurns], bounds.MaxTurns, "max turns"); err != nil {
		return browse.Criteria{}, err
	}
	if c.MinDuration, err = parseFloat(values[inputMinDuration], bounds.MinDuration, "min duration"); err != nil {
		return browse.Criteria{}, err
	}
	if c.MaxDuration, err = parseFloat(values[inputMaxDuration], bounds.MaxDuration, "max duration"); err != nil {
		return browse.Criteria{}, err
	}
	return c, nil
}

func parseInt(s string, fallback int, name string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", name, s)
	}
	return v, nil
}

func parseFloat(s string, fallback float64, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

func (m model) inputValues() [numInputs]string {
	var vals [numInputs]string
	for i := range m.inputs {
		vals[i] = m.inputs[i].Value()
	}
	return vals
}

// inputsKey identifies the current filter text, for debouncing.
func (m model) inputsKey() string {
	vals := m.inputValues()
	return strings.Join(vals[:], "\x00")
}

func (m *model) focusInput(i int) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.activeInput = i
	if i >= 0 {
		m.inputs[i].Focus()
	}
}

// cycleFocus moves through list -> four inputs -> list.
func (m *model) cycleFocus(delta int) {
	pos := m.activeInput + 1 // list is position 0
	pos = (pos + delta + numInputs + 1) % (numInputs + 1)
	m.focusInput(pos - 1)
}

func (m model) renderFilters() string {
	field := func(i int) string {
		return m.inputs[i].View() + styleInputPrompt.Render("]")
	}
	turns := lipgloss.JoinHorizontal(lipgloss.Top,
		styleFilterLabel.Render("turns"), field(inputMinTurns), " – ", field(inputMaxTurns))
	dur := lipgloss.JoinHorizontal(lipgloss.Top,
		styleFilterLabel.Render("dur (s)"), field(inputMinDuration), " – ", field(inputMaxDuration))
	return lipgloss.JoinVertical(lipgloss.Left, turns, dur)
}
