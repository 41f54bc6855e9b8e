package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/mentor"
	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	examscreen "github.com/abhisek/edumentor/internal/screens/exam"
	"github.com/abhisek/edumentor/internal/screens/history"
	mentorscreen "github.com/abhisek/edumentor/internal/screens/mentor"
	"github.com/abhisek/edumentor/internal/screens/unavailable"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/abhisek/edumentor/internal/ui/components"
)

// Deps are the services the home menu hands to the screens it opens.
type Deps struct {
	Exams  *ex.Service
	Mentor *mentor.Conversation
	Events store.EventRepo

	// Offline is set when no LLM provider is configured.
	Offline bool

	// LatestVersion is non-empty when a newer release is available.
	LatestVersion string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	stats      dashboardStats
}

type dashboardStats struct {
	exams    int
	attempts int
	avgPct   int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	stats := dashboardStats{}
	if deps.Exams != nil {
		stats.exams = deps.Exams.Catalog().Len()
	}
	if deps.Events != nil {
		if attempts, err := deps.Events.QueryAttempts(context.Background(), store.QueryOpts{}); err == nil {
			stats.attempts = len(attempts)
			stats.avgPct = averagePercent(attempts)
		}
	}

	menuLabels := []string{"TAKE AN EXAM", "ASK THE MENTOR", "HISTORY", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			if deps.Exams == nil {
				return push(unavailable.New("Exams", "No exam catalog is loaded.",
					"Point --bank or EDUMENTOR_BANK at a directory of quiz files."))
			}
			return push(examscreen.New(deps.Exams))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			if deps.Mentor == nil {
				return push(unavailable.New("Mentor", "No LLM provider is configured.",
					"Set EDUMENTOR_LLM_PROVIDER and the matching API key, e.g. EDUMENTOR_ANTHROPIC_API_KEY."))
			}
			return push(mentorscreen.New(deps.Mentor))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			if deps.Events == nil {
				return push(unavailable.New("History", "Attempt history needs a database.", "Pass --db or set EDUMENTOR_DB."))
			}
			return push(history.New(deps.Events))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		stats:      stats,
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes the header, footer and their gaps.
	compact := height+8 < 30 || width < 100
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
	}
	if h.deps.Offline {
		sections = append(sections, renderOfflineNote(cw))
	}
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, compact))
	if h.deps.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.deps.LatestVersion, cw))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// averagePercent is the mean score percentage across attempts.
func averagePercent(attempts []store.AttemptEvent) int {
	var sum float64
	var n int
	for _, a := range attempts {
		if a.Total == 0 {
			continue
		}
		sum += float64(a.Score) / float64(a.Total)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(sum/float64(n)*100 + 0.5)
}
