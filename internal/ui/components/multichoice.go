package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor;
// the owning screen decides what Enter does.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
}

// NewMultiChoice creates a new multiple-choice component with the cursor on
// cursor, clamped to the options.
func NewMultiChoice(question string, options []string, cursor int) MultiChoice {
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
	}
}

// Update moves the cursor with arrows, j/k, or the option's letter or number.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= '1' && c <= '9' && int(c-'1') < len(m.Options):
			m.Cursor = int(c - '1')
		case c >= 'a' && c <= 'z' && c != 'j' && c != 'k' && int(c-'a') < len(m.Options):
			m.Cursor = int(c - 'a')
		}
	}
	return m
}

// OptionLabel returns the letter shown for option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		style := theme.Unselected
		if i == m.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)))
		b.WriteString("\n")
	}
	return b.String()
}
