// Package exam drives a quiz run from the catalog list through answering to
// the result view, and evaluates one-shot submissions.
package exam

import (
	"errors"
	"fmt"

	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/google/uuid"
)

var (
	// ErrInvalidState is returned when an action doesn't apply to the
	// current state.
	ErrInvalidState = errors.New("action not valid in current state")

	// ErrNoSelection is returned when confirming a question with no option
	// selected.
	ErrNoSelection = errors.New("no option selected")
)

// State is a step of the quiz flow.
type State int

const (
	// StateList browses the catalog. Initial state.
	StateList State = iota
	// StateQuiz answers questions forward-only.
	StateQuiz
	// StateResult shows score, topics and feedback.
	StateResult
)

func (s State) String() string {
	switch s {
	case StateList:
		return "LIST"
	case StateQuiz:
		return "QUIZ"
	case StateResult:
		return "RESULT"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FeedbackRequest is handed out by BeginFeedback and returned with the
// reply to FinishFeedback.
type FeedbackRequest struct {
	RunID  string
	Prompt string
}

// Flow is the LIST -> QUIZ -> RESULT -> LIST state machine for one UI
// session. It is not safe for concurrent use; the owning session
// serializes access.
type Flow struct {
	catalog *quiz.Catalog
	newID   func() string

	state   State
	quiz    *quiz.Quiz
	pos     int
	answers quiz.AnswerSet
	result  *Result
	runID   string

	feedback        feedback.Outcome
	feedbackFetched bool
	feedbackLoading bool
}

// NewFlow creates a flow in StateList over catalog.
func NewFlow(catalog *quiz.Catalog) *Flow {
	return &Flow{
		catalog: catalog,
		newID:   func() string { return uuid.NewString() },
	}
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Quizzes lists the catalog.
func (f *Flow) Quizzes() []*quiz.Quiz { return f.catalog.All() }

// Quiz returns the quiz being taken, or nil in StateList.
func (f *Flow) Quiz() *quiz.Quiz { return f.quiz }

// RunID identifies the current run. Empty in StateList.
func (f *Flow) RunID() string { return f.runID }

// Start begins a run of the quiz with the given ID with an empty answer set.
func (f *Flow) Start(id string) error {
	if f.state != StateList {
		return fmt.Errorf("start %s in %s: %w", id, f.state, ErrInvalidState)
	}
	q, err := f.catalog.Get(id)
	if err != nil {
		return err
	}

	f.quiz = q
	f.pos = 0
	f.answers = quiz.AnswerSet{}
	f.result = nil
	f.runID = f.newID()
	f.clearFeedback()
	f.state = StateQuiz
	return nil
}

// Current returns the question being answered.
func (f *Flow) Current() (*quiz.Question, bool) {
	if f.state != StateQuiz {
		return nil, false
	}
	return &f.quiz.Questions[f.pos], true
}

// Position returns the zero-based index of the current question and the
// question count.
func (f *Flow) Position() (index, total int) {
	if f.quiz == nil {
		return 0, 0
	}
	return f.pos, f.quiz.Total()
}

// Select records option as the answer to the current question,
// overwriting any earlier selection.
func (f *Flow) Select(option int) error {
	q, ok := f.Current()
	if !ok {
		return fmt.Errorf("select in %s: %w", f.state, ErrInvalidState)
	}
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("%w: option %d of %d", quiz.ErrAnswerOutOfRange, option, len(q.Options))
	}
	if f.pos < len(f.answers) {
		f.answers[f.pos] = option
	} else {
		f.answers = append(f.answers, option)
	}
	return nil
}

// Selected returns the selection for the current question.
func (f *Flow) Selected() (int, bool) {
	if f.state != StateQuiz {
		return quiz.Unanswered, false
	}
	return f.answers.At(f.pos)
}

// Confirm locks in the current answer and moves forward. Confirming the
// last question grades the run and enters StateResult.
func (f *Flow) Confirm() error {
	if f.state != StateQuiz {
		return fmt.Errorf("confirm in %s: %w", f.state, ErrInvalidState)
	}
	if _, ok := f.answers.At(f.pos); !ok {
		return ErrNoSelection
	}

	f.pos++
	if f.pos == f.quiz.Total() {
		f.result = Evaluate(f.quiz, f.answers)
		f.state = StateResult
	}
	return nil
}

// Answers returns a copy of the answers given so far.
func (f *Flow) Answers() quiz.AnswerSet {
	return f.answers.Clone()
}

// Result returns the graded run in StateResult, nil otherwise.
func (f *Flow) Result() *Result {
	if f.state != StateResult {
		return nil
	}
	return f.result
}

// NeedsFeedback reports whether a feedback request should fire: the result
// is showing, nothing has been fetched and nothing is in flight.
func (f *Flow) NeedsFeedback() bool {
	return f.state == StateResult && !f.feedbackFetched && !f.feedbackLoading
}

// BeginFeedback marks a fetch as in flight and returns what to send. It
// returns false when NeedsFeedback is false, so calling it on every render
// issues at most one request per run.
func (f *Flow) BeginFeedback() (FeedbackRequest, bool) {
	if !f.NeedsFeedback() {
		return FeedbackRequest{}, false
	}
	f.feedbackLoading = true
	return FeedbackRequest{RunID: f.runID, Prompt: f.result.Prompt}, true
}

// FinishFeedback stores the reply for runID. Replies for a run that has
// since been reset are dropped and false is returned.
func (f *Flow) FinishFeedback(runID string, out feedback.Outcome) bool {
	if f.state != StateResult || runID != f.runID || !f.feedbackLoading {
		return false
	}
	f.feedback = out
	f.feedbackLoading = false
	f.feedbackFetched = true
	return true
}

// Feedback returns the fetched feedback and whether it has arrived.
func (f *Flow) Feedback() (feedback.Outcome, bool) {
	return f.feedback, f.feedbackFetched
}

// FeedbackLoading reports whether a fetch is in flight.
func (f *Flow) FeedbackLoading() bool {
	return f.feedbackLoading
}

// Reset discards the run, answers and feedback and returns to StateList.
func (f *Flow) Reset() {
	f.state = StateList
	f.quiz = nil
	f.pos = 0
	f.answers = nil
	f.result = nil
	f.runID = ""
	f.clearFeedback()
}

func (f *Flow) clearFeedback() {
	f.feedback = feedback.Outcome{}
	f.feedbackFetched = false
	f.feedbackLoading = false
}
