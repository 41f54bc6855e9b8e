package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	var body string
	switch s.flow.State() {
	case ex.StateQuiz:
		body = s.renderQuestion(width)
	case ex.StateResult:
		body = s.renderResult(width)
	default:
		body = s.renderList(width)
	}

	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *ExamScreen) renderList(width int) string {
	cw := components.ContentWidth(width)
	if len(s.list.Items) == 0 {
		return theme.Hint.Render("No exams available. Add a quiz bank with --bank.")
	}
	title := theme.Title.Width(cw).Render("Choose an exam")
	return title + "\n\n" + components.ArcadeCard(s.list.View(), cw)
}

func (s *ExamScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	idx, total := s.flow.Position()
	steps := components.QuestionSteps{Current: idx, Total: total}
	bar := components.Bar{Label: "Progress", Ratio: float64(idx) / float64(total), Width: cw}
	return steps.View() + "\n" + bar.View() + "\n\n" + components.ArcadeCard(s.choice.View(), cw)
}

func (s *ExamScreen) renderResult(width int) string {
	res := s.flow.Result()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Score: %s  ",
		lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(fmt.Sprintf("%d/%d", res.Score, res.Total))))
	b.WriteString(theme.TierStyle(res.Tier).Render(res.Tier.Label()))
	b.WriteString("\n\n")

	for _, q := range res.Questions {
		mark := theme.Correct.Render("✓")
		if !q.IsRight {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s Question %d  %s\n", mark, q.Position+1,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Topic)))
	}
	b.WriteString("\n")

	if res.StrongTopic != "" {
		b.WriteString(theme.Correct.Render("Strong: ") + res.StrongTopic + "\n")
	}
	if res.WeakTopic != "" {
		b.WriteString(theme.Incorrect.Render("Review: ") + res.WeakTopic + "\n")
	}
	b.WriteString("\n")

	switch out, fetched := s.flow.Feedback(); {
	case fetched:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Mentor feedback"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(out.Text))
	default:
		b.WriteString(s.spinner.View())
	}

	return components.TitledCard("Results", b.String(), cw)
}
