// Package welcome is the animated splash shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

const (
	frameDelay   = 100 * time.Millisecond
	sparkleAt    = 500 * time.Millisecond
	taglineAt    = 1500 * time.Millisecond
	animationEnd = 3 * time.Second
)

const bookArt = `   ______ ______
 _/      Y      \_
// ~~ ~~ | ~~ ~  \\
// ~ ~ ~~ | ~~~ ~ \\
//________.|.________\\
'----------'-'----------'`

// sparkleRows are the book lines that get a sparkle on either side.
var sparkleRows = [...]int{1, 4}

const tagline = "Study smarter, one quiz at a time."

type frameMsg struct{}

// Screen plays the splash until any key is pressed, then replaces itself
// with the home screen.
type Screen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frames  int
	done    bool
}

var _ screen.Screen = (*Screen)(nil)

// New returns a splash that opens next() when dismissed.
func New(next func() screen.Screen) *Screen {
	return &Screen{next: next}
}

func (s *Screen) Title() string { return "" }

func (s *Screen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameDelay, func(time.Time) tea.Msg { return frameMsg{} })
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if s.done {
			return s, nil
		}
		s.elapsed = min(s.elapsed+frameDelay, animationEnd)
		s.frames++
		return s, nextFrame()
	case tea.KeyPressMsg:
		if s.done {
			return s, nil
		}
		s.done = true
		home := s.next()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	parts := []string{s.book()}
	if s.elapsed >= taglineAt {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// book renders the book art, flanked by alternating sparkles once they
// have appeared.
func (s *Screen) book() string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(bookArt)
	if s.elapsed < sparkleAt {
		return art
	}

	glyph := "★"
	if s.frames%2 == 1 {
		glyph = "✦"
	}
	left := lipgloss.NewStyle().Foreground(theme.Accent).Render(glyph)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(glyph)

	lines := strings.Split(art, "\n")
	for i, row := range sparkleRows {
		if row >= len(lines) {
			continue
		}
		if i%2 == 1 {
			left, right = right, left
		}
		lines[row] = left + "  " + lines[row] + "  " + right
	}
	return strings.Join(lines, "\n")
}
