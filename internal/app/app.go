// Package app hosts the root Bubble Tea model: window sizing, the screen
// stack and the chrome drawn around the active screen.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/screens/home"
	"github.com/abhisek/edumentor/internal/screens/welcome"
	"github.com/abhisek/edumentor/internal/ui/layout"
)

type Options struct {
	home.Deps

	Status     string // right side of the header, usually the model in use
	SkipSplash bool
}

var (
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	nestedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

type Model struct {
	router        *router.Router
	status        string
	width, height int
}

func newModel(opts Options) Model {
	openHome := func() screen.Screen { return home.New(opts.Deps) }
	first := screen.Screen(welcome.New(openHome))
	if opts.SkipSplash {
		first = openHome()
	}
	return Model{router: router.New(first), status: opts.Status}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.TooSmallNotice(m.width, m.height)
	}
	f := layout.Frame{
		Title:  m.router.Breadcrumb(" › "),
		Status: m.status,
		Hints:  m.hints(),
	}
	return f.Render(m.width, m.height, m.router.View)
}

// hints prefers the active screen's own key hints.
func (m Model) hints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return nestedHints
	}
	return rootHints
}

// Run blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newModel(opts)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
