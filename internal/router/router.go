// Package router keeps the stack of TUI screens. Screens navigate by
// returning one of the *ScreenMsg values from a command; the router
// applies it on the next Update.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edumentor/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router holds the screen stack. The stack is never empty.
type Router struct {
	stack []screen.Screen
}

// New returns a router whose root is initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the current screen. The root screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if r.top() == 0 {
		return nil
	}
	leave(r.stack[r.top()])
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
	return nil
}

// Replace closes the current screen and opens s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	leave(r.stack[r.top()])
	r.stack[r.top()] = s
	return s.Init()
}

func leave(s screen.Screen) {
	if l, ok := s.(screen.Leaver); ok {
		l.Leave()
	}
}

// Active returns the current screen.
func (r *Router) Active() screen.Screen {
	return r.stack[r.top()]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles of the open screens with sep, skipping
// screens without a title.
func (r *Router) Breadcrumb(sep string) string {
	titles := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Update applies navigation messages and hands everything else to the
// current screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the current screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
