// Package mentor is the chat screen for asking the study mentor questions.
package mentor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/llm"
	mentorchat "github.com/abhisek/edumentor/internal/mentor"
	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/layout"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

type replyMsg struct {
	Text string
	Err  error
}

type line struct {
	role llm.Role
	text string
}

// MentorScreen is a single chat transcript with an input line.
type MentorScreen struct {
	ctx        context.Context
	cancel     context.CancelFunc
	conv       *mentorchat.Conversation
	input      components.TextInput
	spinner    components.Spinner
	transcript []line
	waiting    bool
}

var _ screen.Screen = (*MentorScreen)(nil)
var _ screen.KeyHintProvider = (*MentorScreen)(nil)
var _ screen.Leaver = (*MentorScreen)(nil)

// New creates a MentorScreen for conv.
func New(conv *mentorchat.Conversation) *MentorScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &MentorScreen{
		ctx:        ctx,
		cancel:     cancel,
		conv:       conv,
		input:      components.NewTextInput("Ask about your coursework...", 500),
		spinner:    components.Spinner{Label: "Thinking..."},
		transcript: []line{{role: llm.RoleAssistant, text: mentorchat.Greeting}},
	}
}

func (s *MentorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *MentorScreen) Title() string {
	return "Mentor"
}

func (s *MentorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+R", Description: "New chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MentorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		s.transcript = append(s.transcript, line{role: llm.RoleAssistant, text: msg.Text})
		return s, nil

	case components.SpinnerTickMsg:
		if s.waiting {
			s.spinner = s.spinner.Advance()
			return s, s.spinner.Tick()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "ctrl+r":
			if s.waiting {
				return s, nil
			}
			s.conv.Reset()
			s.transcript = []line{{role: llm.RoleAssistant, text: mentorchat.Greeting}}
			return s, nil
		case "enter":
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *MentorScreen) send() tea.Cmd {
	if s.waiting {
		return nil
	}
	text, ok := s.input.Take()
	if !ok {
		return nil
	}
	s.waiting = true
	s.transcript = append(s.transcript, line{role: llm.RoleUser, text: text})

	conv, ctx := s.conv, s.ctx
	ask := func() tea.Msg {
		reply, err := conv.Ask(ctx, text)
		return replyMsg{Text: reply, Err: err}
	}
	return tea.Batch(ask, s.spinner.Tick())
}

// Leave abandons a pending question.
func (s *MentorScreen) Leave() {
	s.cancel()
}

func (s *MentorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := cw - 8

	you := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	mentor := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth)

	var blocks []string
	for _, l := range s.transcript {
		who := mentor.Render("Mentor")
		if l.role == llm.RoleUser {
			who = you.Render("You")
		}
		blocks = append(blocks, who+"\n"+body.Render(l.text))
	}
	if s.waiting {
		blocks = append(blocks, s.spinner.View())
	}

	// Keep the newest exchanges when the transcript outgrows the screen.
	inputView := s.input.View()
	avail := height - lipgloss.Height(inputView) - 6
	transcript := strings.Join(blocks, "\n\n")
	if lines := strings.Split(transcript, "\n"); avail > 0 && len(lines) > avail {
		transcript = strings.Join(lines[len(lines)-avail:], "\n")
	}

	content := components.ArcadeCard(transcript, cw) + "\n" + inputView
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
