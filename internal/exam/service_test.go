package exam

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/llm"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	attempts []Attempt
	err      error
}

func (r *fakeRecorder) RecordAttempt(_ context.Context, a Attempt) error {
	r.attempts = append(r.attempts, a)
	return r.err
}

func newTestService(t *testing.T, gen llm.TextGenerator, rec AttemptRecorder) *Service {
	t.Helper()
	cat, err := quiz.NewCatalog(testQuiz())
	require.NoError(t, err)
	s := NewService(cat, feedback.NewRequester(gen), rec)
	s.newID = func() string { return "attempt-1" }
	s.warn = func(string, ...any) {}
	return s
}

func TestEvaluate_Scenario(t *testing.T) {
	q := testQuiz()
	res := Evaluate(&q, quiz.AnswerSet{1, 0, 2})

	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, quiz.TierGood, res.Tier)
	require.Len(t, res.Questions, 3)
	assert.True(t, res.Questions[0].IsRight)
	assert.False(t, res.Questions[1].IsRight)
	assert.True(t, res.Questions[2].IsRight)
	assert.Equal(t, "Quadratic Equations", res.WeakTopic)
	assert.Equal(t, "Linear Equations", res.StrongTopic)
	assert.Contains(t, res.Prompt, "Score: 2/3")
}

func TestService_Evaluate(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("Review quadratics.")
	rec := &fakeRecorder{}
	s := newTestService(t, gen, rec)

	ev, err := s.Evaluate(context.Background(), "algebra", quiz.AnswerSet{1, 0, 2})
	require.NoError(t, err)

	assert.Equal(t, "attempt-1", ev.AttemptID)
	assert.Equal(t, 2, ev.Result.Score)
	assert.Equal(t, feedback.Outcome{Text: "Review quadratics.", Source: feedback.SourceRemote}, ev.Feedback)
	assert.Equal(t, 1, gen.CallCount())

	require.Len(t, rec.attempts, 1)
	assert.Equal(t, "attempt-1", rec.attempts[0].ID)
	assert.Equal(t, feedback.SourceRemote, rec.attempts[0].Feedback.Source)
}

func TestService_EvaluateFallback(t *testing.T) {
	gen := llm.NewMockTextGenerator().Fail(errors.New("boom"))
	s := newTestService(t, gen, nil)

	ev, err := s.Evaluate(context.Background(), "algebra", quiz.AnswerSet{1, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, feedback.Fallback, ev.Feedback.Text)
	assert.Equal(t, 3, ev.Result.Score)
}

func TestService_EvaluateErrors(t *testing.T) {
	s := newTestService(t, llm.NewMockTextGenerator(), nil)
	ctx := context.Background()

	_, err := s.Evaluate(ctx, "missing", nil)
	assert.ErrorIs(t, err, quiz.ErrUnknownQuiz)

	_, err = s.Evaluate(ctx, "algebra", quiz.AnswerSet{1, 2, 2, 0})
	assert.ErrorIs(t, err, quiz.ErrTooManyAnswers)

	_, err = s.Evaluate(ctx, "algebra", quiz.AnswerSet{7})
	assert.ErrorIs(t, err, quiz.ErrAnswerOutOfRange)
}

func TestService_RecordFailureIsWarning(t *testing.T) {
	rec := &fakeRecorder{err: fmt.Errorf("disk full")}
	s := newTestService(t, llm.NewMockTextGenerator().Reply("ok"), rec)
	var warned []string
	s.warn = func(format string, args ...any) { warned = append(warned, fmt.Sprintf(format, args...)) }

	ev, err := s.Evaluate(context.Background(), "algebra", quiz.AnswerSet{1})
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Result.Score)
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0], "disk full")
}

func TestStoreRecorder(t *testing.T) {
	st, err := store.Open("file:exam_store_recorder?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()

	q := testQuiz()
	q.Questions[2].Topic = ""
	res := Evaluate(&q, quiz.AnswerSet{1, 0})

	rec := NewStoreRecorder(st.EventRepo())
	err = rec.RecordAttempt(context.Background(), Attempt{
		ID:       "a-1",
		Result:   res,
		Answers:  quiz.AnswerSet{1, 0},
		Feedback: feedback.Outcome{Text: "x", Source: feedback.SourceFallback},
	})
	require.NoError(t, err)

	got, err := st.EventRepo().QueryAttempts(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].AttemptID)
	assert.Equal(t, 1, got[0].Score)
	assert.Equal(t, "fallback", got[0].FeedbackSource)
	require.Len(t, got[0].Answers, 3)
	assert.Equal(t, quiz.GeneralTopic, got[0].Answers[2].Topic)
	assert.Equal(t, quiz.Unanswered, got[0].Answers[2].Selected)
}
