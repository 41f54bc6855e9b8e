// Package unavailable is the screen shown when a menu entry's service was
// not configured for this run.
package unavailable

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/layout"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

// Screen names a missing feature, why it is missing, and how to enable it.
type Screen struct {
	feature string
	reason  string
	fix     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(feature, reason, fix string) *Screen {
	return &Screen{feature: feature, reason: reason, fix: fix}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.feature }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && (k.String() == "esc" || k.String() == "enter") {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(s.feature+" is unavailable") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(cw-6).Render(s.reason)
	if s.fix != "" {
		body += "\n\n" + theme.Hint.Width(cw-6).Render(s.fix)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.ArcadeCard(body, cw))
}
