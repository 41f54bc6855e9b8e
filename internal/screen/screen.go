// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edumentor/internal/ui/layout"
)

// Screen is one page of the TUI. View receives the area between the
// header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title names the screen in the header breadcrumb. Empty titles are
	// skipped.
	Title() string
}

// Leaver is implemented by screens that hold in-flight work. The router
// calls Leave when the screen is popped or replaced.
type Leaver interface {
	Leave()
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
