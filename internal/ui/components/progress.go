package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edumentor/internal/ui/theme"
)

// Bar is a one-line meter filled to Ratio, clamped to [0, 1].
type Bar struct {
	Label   string
	Ratio   float64
	Width   int
	Percent bool
	Fill    color.Color // nil is theme.Secondary
}

func (b Bar) View() string {
	ratio := min(max(b.Ratio, 0), 1)

	var prefix, suffix string
	if b.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	}
	if b.Percent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%5d%%", int(ratio*100)))
	}

	cells := max(b.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	lit := int(float64(cells) * ratio)
	fill := b.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	track := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", lit)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-lit))
	return prefix + track + suffix
}

// QuestionSteps draws one marker per question: answered questions filled,
// the current one ringed, the rest hollow.
type QuestionSteps struct {
	Current int
	Total   int
}

func (q QuestionSteps) View() string {
	done := lipgloss.NewStyle().Foreground(theme.Secondary)
	current := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	todo := lipgloss.NewStyle().Foreground(theme.Border)

	marks := make([]string, q.Total)
	for i := range marks {
		switch {
		case i < q.Current:
			marks[i] = done.Render("●")
		case i == q.Current:
			marks[i] = current.Render("◉")
		default:
			marks[i] = todo.Render("○")
		}
	}
	return strings.Join(marks, " ")
}
