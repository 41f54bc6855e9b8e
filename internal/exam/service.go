package exam

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/llm"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/google/uuid"
)

// Attempt is a completed run ready to be recorded.
type Attempt struct {
	ID       string
	Result   *Result
	Answers  quiz.AnswerSet
	Feedback feedback.Outcome
}

// AttemptRecorder persists completed attempts.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}

// StoreRecorder records attempts in the event store.
type StoreRecorder struct {
	repo store.EventRepo
}

// NewStoreRecorder returns a recorder backed by repo.
func NewStoreRecorder(repo store.EventRepo) *StoreRecorder {
	return &StoreRecorder{repo: repo}
}

// RecordAttempt implements AttemptRecorder.
func (r *StoreRecorder) RecordAttempt(ctx context.Context, a Attempt) error {
	return r.repo.AppendAttempt(ctx, attemptEventData(a))
}

func attemptEventData(a Attempt) store.AttemptEventData {
	res := a.Result
	answers := make([]store.AttemptAnswer, len(res.Questions))
	for i, q := range res.Questions {
		topic := q.Topic
		if topic == "" {
			topic = quiz.GeneralTopic
		}
		answers[i] = store.AttemptAnswer{
			Position: q.Position,
			Topic:    topic,
			Selected: q.Selected,
			Correct:  q.IsRight,
		}
	}
	return store.AttemptEventData{
		AttemptID:      a.ID,
		QuizID:         res.QuizID,
		QuizTitle:      res.QuizTitle,
		Score:          res.Score,
		Total:          res.Total,
		Tier:           string(res.Tier),
		Answers:        answers,
		StrongTopic:    res.StrongTopic,
		WeakTopic:      res.WeakTopic,
		FeedbackSource: string(a.Feedback.Source),
	}
}

// Evaluation is the answer to a one-shot submission.
type Evaluation struct {
	AttemptID string           `json:"attempt_id"`
	Result    *Result          `json:"result"`
	Feedback  feedback.Outcome `json:"feedback"`
}

// Service grades submissions outside of an interactive flow and records
// completed attempts.
type Service struct {
	catalog   *quiz.Catalog
	requester *feedback.Requester
	recorder  AttemptRecorder
	newID     func() string
	warn      func(format string, args ...any)
}

// NewService creates a Service. recorder may be nil, in which case attempts
// are not persisted.
func NewService(catalog *quiz.Catalog, requester *feedback.Requester, recorder AttemptRecorder) *Service {
	return &Service{
		catalog:   catalog,
		requester: requester,
		recorder:  recorder,
		newID:     func() string { return uuid.NewString() },
		warn: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
}

// Catalog returns the quizzes the service grades against.
func (s *Service) Catalog() *quiz.Catalog { return s.catalog }

// Evaluate grades answers for the quiz with the given ID, fetches feedback
// and records the attempt. Only lookup and answer validation errors are
// returned; feedback and recording failures degrade silently.
func (s *Service) Evaluate(ctx context.Context, quizID string, answers quiz.AnswerSet) (*Evaluation, error) {
	q, err := s.catalog.Get(quizID)
	if err != nil {
		return nil, err
	}
	if err := quiz.ValidateAnswers(q.Questions, answers); err != nil {
		return nil, err
	}

	res := Evaluate(q, answers)
	id := s.newID()
	out := s.RequestFeedback(ctx, id, res.Prompt)

	s.Record(ctx, Attempt{ID: id, Result: res, Answers: answers.Clone(), Feedback: out})
	return &Evaluation{AttemptID: id, Result: res, Feedback: out}, nil
}

// RequestFeedback fetches feedback for a result prompt. LLM calls are
// tagged with attemptID in the event log.
func (s *Service) RequestFeedback(ctx context.Context, attemptID, prompt string) feedback.Outcome {
	return s.requester.Request(llm.WithAttemptID(ctx, attemptID), prompt)
}

// Record persists a completed attempt. Failures are reported as warnings.
func (s *Service) Record(ctx context.Context, a Attempt) {
	if s.recorder == nil || a.Result == nil {
		return
	}
	if err := s.recorder.RecordAttempt(ctx, a); err != nil {
		s.warn("recording attempt %s failed: %v", a.ID, err)
	}
}
