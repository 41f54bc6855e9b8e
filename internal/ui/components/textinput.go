package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused single-line prompt.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput returns a focused input. A charLimit of 0 keeps the bubbles
// default.
func NewTextInput(placeholder string, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.Focus()
	return TextInput{Model: m}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	m, cmd := t.Model.Update(msg)
	t.Model = m
	return t, cmd
}

func (t TextInput) View() string  { return t.Model.View() }
func (t TextInput) Value() string { return t.Model.Value() }

// Take returns the trimmed input and clears it. A blank input is left
// untouched and reported as not ok.
func (t *TextInput) Take() (string, bool) {
	text := strings.TrimSpace(t.Model.Value())
	if text == "" {
		return "", false
	}
	t.Model.Reset()
	return text, true
}
