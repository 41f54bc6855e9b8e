// Package history lists past attempts with their per-question outcome and
// the learner's lifetime accuracy per topic.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/layout"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

const (
	pageSize   = 50
	dateLayout = "Jan 02, 2006 15:04"
	topicWidth = 22
)

type loadedMsg struct {
	attempts []store.AttemptEvent
	topics   []store.TopicAccuracy
	err      error
}

type Screen struct {
	repo     store.EventRepo
	attempts []store.AttemptEvent
	topics   []store.TopicAccuracy
	cursor   int
	open     map[string]bool // by attempt ID
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(repo store.EventRepo) *Screen {
	return &Screen{repo: repo, open: map[string]bool{}}
}

func (s *Screen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()
		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return loadedMsg{err: err}
		}
		// Attempts are still worth showing without topic accuracy.
		topics, _ := repo.TopicAccuracy(ctx)
		return loadedMsg{attempts: attempts, topics: topics}
	}
}

func (s *Screen) Title() string { return "History" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.err = true, msg.err
		s.attempts, s.topics = msg.attempts, msg.topics
		s.cursor = min(s.cursor, max(len(s.attempts)-1, 0))
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.attempts)-1, 0))
		case "enter":
			if s.cursor < len(s.attempts) {
				id := s.attempts[s.cursor].AttemptID
				s.open[id] = !s.open[id]
			}
		case "r":
			if s.repo != nil {
				return s, s.Init()
			}
		}
	}
	return s, nil
}

func notice(width int, c color.Color, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(c).Render("\n\n" + text)
}

func (s *Screen) View(width, height int) string {
	switch {
	case s.err != nil:
		return notice(width, theme.Error, "Error: "+s.err.Error())
	case !s.loaded:
		return notice(width, theme.TextDim, "Loading history...")
	case len(s.attempts) == 0:
		return notice(width, theme.TextDim, "No attempts yet. Take an exam!")
	}

	center := func(line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.attempts {
		b.WriteString(center(s.row(i, a)))
		if s.open[a.AttemptID] {
			for _, line := range details(a) {
				b.WriteString(center(line))
			}
		}
	}

	if len(s.topics) > 0 {
		b.WriteString("\n" + center(theme.Title.Render("Topic accuracy")) + "\n")
		barWidth := components.ContentWidth(width) - 10
		for _, t := range s.topics {
			label := fmt.Sprintf("%-*s %2d/%-2d", topicWidth, truncate(t.Topic, topicWidth), t.Correct, t.Asked)
			bar := components.Bar{
				Label:   label,
				Ratio:   t.Ratio(),
				Width:   barWidth,
				Percent: true,
				Fill:    theme.AccuracyColor(t.Ratio()),
			}
			b.WriteString(center(bar.View()))
		}
	}
	return b.String()
}

func (s *Screen) row(i int, a store.AttemptEvent) string {
	marker, style := "  ", theme.Unselected
	if i == s.cursor {
		marker, style = "> ", theme.Selected
	}
	tier := quiz.Tier(a.Tier)
	text := fmt.Sprintf("%s%s  %-24s %d/%d  ",
		marker, a.Timestamp.Local().Format(dateLayout), a.QuizTitle, a.Score, a.Total)
	return style.Render(text) + theme.TierStyle(tier).Render(tier.Label())
}

// details lists each graded question and the topic to review.
func details(a store.AttemptEvent) []string {
	lines := make([]string, 0, len(a.Answers)+1)
	for _, ans := range a.Answers {
		mark := theme.Correct.Render("✓")
		if !ans.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("    %s Question %d  %s", mark, ans.Position+1, ans.Topic))
	}
	if a.WeakTopic != "" {
		lines = append(lines, theme.Hint.Render("    Review: "+a.WeakTopic))
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
