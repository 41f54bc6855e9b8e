// Package exam is the exam-taking screen: quiz list, forward-only
// questions, and the result view with coaching feedback.
package exam

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/screen"
	"github.com/abhisek/edumentor/internal/ui/components"
	"github.com/abhisek/edumentor/internal/ui/layout"
)

// feedbackMsg carries a finished feedback request back to the screen.
type feedbackMsg struct {
	RunID   string
	Outcome feedback.Outcome
}

// ExamScreen drives an exam flow.
type ExamScreen struct {
	flow    *ex.Flow
	service *ex.Service

	list    components.Menu
	choice  components.MultiChoice
	spinner components.Spinner
	errMsg  string

	// cancelFetch aborts the feedback request of the current run.
	cancelFetch context.CancelFunc
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.Leaver = (*ExamScreen)(nil)

// New creates an ExamScreen over the service's catalog.
func New(service *ex.Service) *ExamScreen {
	s := &ExamScreen{
		flow:    ex.NewFlow(service.Catalog()),
		service: service,
		spinner: components.Spinner{Label: "Your mentor is reviewing your answers..."},
	}
	s.list = s.buildList()
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamScreen) Title() string {
	switch s.flow.State() {
	case ex.StateQuiz, ex.StateResult:
		return s.flow.Quiz().Title
	}
	return "Exams"
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch s.flow.State() {
	case ex.StateQuiz:
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Abandon"},
		}
	case ex.StateResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to exams"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-9", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Flow exposes the underlying state machine.
func (s *ExamScreen) Flow() *ex.Flow { return s.flow }

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case feedbackMsg:
		cmd = s.handleFeedback(msg)

	case components.SpinnerTickMsg:
		if s.flow.FeedbackLoading() {
			s.spinner = s.spinner.Advance()
			cmd = s.spinner.Tick()
		}

	case tea.KeyPressMsg:
		cmd = s.handleKey(msg)
	}

	// Every update re-checks the guard; it yields a request at most once
	// per completed run.
	return s, tea.Batch(cmd, s.fetchFeedback())
}

func (s *ExamScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	s.errMsg = ""

	switch s.flow.State() {
	case ex.StateList:
		if msg.String() == "esc" {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return cmd

	case ex.StateQuiz:
		switch msg.String() {
		case "esc":
			s.reset()
			return nil
		case "enter":
			return s.confirm()
		}
		s.choice = s.choice.Update(msg)
		return nil

	case ex.StateResult:
		switch msg.String() {
		case "enter", "esc", "r":
			s.reset()
		}
	}
	return nil
}

func (s *ExamScreen) confirm() tea.Cmd {
	if err := s.flow.Select(s.choice.Cursor); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.flow.Confirm(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if s.flow.State() == ex.StateQuiz {
		s.loadQuestion()
	}
	return nil
}

// fetchFeedback issues the feedback request when the flow's guard allows.
func (s *ExamScreen) fetchFeedback() tea.Cmd {
	req, ok := s.flow.BeginFeedback()
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFetch = cancel

	service := s.service
	fetch := func() tea.Msg {
		out := service.RequestFeedback(ctx, req.RunID, req.Prompt)
		return feedbackMsg{RunID: req.RunID, Outcome: out}
	}
	return tea.Batch(fetch, s.spinner.Tick())
}

func (s *ExamScreen) handleFeedback(msg feedbackMsg) tea.Cmd {
	if !s.flow.FinishFeedback(msg.RunID, msg.Outcome) {
		return nil
	}
	s.stopFetch()

	attempt := ex.Attempt{
		ID:       msg.RunID,
		Result:   s.flow.Result(),
		Answers:  s.flow.Answers(),
		Feedback: msg.Outcome,
	}
	service := s.service
	return func() tea.Msg {
		service.Record(context.Background(), attempt)
		return nil
	}
}

func (s *ExamScreen) start(id string) tea.Cmd {
	if err := s.flow.Start(id); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.loadQuestion()
	return nil
}

func (s *ExamScreen) loadQuestion() {
	q, ok := s.flow.Current()
	if !ok {
		return
	}
	idx, total := s.flow.Position()
	cursor, _ := s.flow.Selected()
	s.choice = components.NewMultiChoice(
		fmt.Sprintf("Question %d of %d\n\n%s", idx+1, total, q.Prompt),
		q.Options,
		cursor,
	)
}

// Leave aborts any feedback request still in flight.
func (s *ExamScreen) Leave() {
	s.stopFetch()
}

func (s *ExamScreen) stopFetch() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
}

func (s *ExamScreen) reset() {
	s.stopFetch()
	s.flow.Reset()
	s.errMsg = ""
	s.list = s.buildList()
}

func (s *ExamScreen) buildList() components.Menu {
	quizzes := s.flow.Quizzes()
	items := make([]components.MenuItem, len(quizzes))
	for i, q := range quizzes {
		id := q.ID
		detail := fmt.Sprintf("%d questions", q.Total())
		if q.Duration != "" {
			detail += " · " + q.Duration
		}
		items[i] = components.MenuItem{
			Label:  q.Title,
			Detail: detail,
			Action: func() tea.Cmd { return s.start(id) },
		}
	}
	menu := components.NewMenu(items)
	menu.Numbered = true
	return menu
}
