package exam

import (
	"testing"

	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:    "algebra",
		Title: "Algebra Mid-Term",
		Questions: []quiz.Question{
			{Prompt: "q1", Options: []string{"a", "b", "c"}, Correct: 1, Topic: "Linear Equations"},
			{Prompt: "q2", Options: []string{"a", "b", "c"}, Correct: 2, Topic: "Quadratic Equations"},
			{Prompt: "q3", Options: []string{"a", "b", "c"}, Correct: 2, Topic: "Functions"},
		},
	}
}

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	cat, err := quiz.NewCatalog(testQuiz())
	require.NoError(t, err)
	f := NewFlow(cat)
	n := 0
	f.newID = func() string {
		n++
		return "run-" + string(rune('0'+n))
	}
	return f
}

func answerAll(t *testing.T, f *Flow, answers ...int) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, f.Select(a))
		require.NoError(t, f.Confirm())
	}
}

func TestFlow_InitialState(t *testing.T) {
	f := newTestFlow(t)
	assert.Equal(t, StateList, f.State())
	assert.Len(t, f.Quizzes(), 1)
	assert.Nil(t, f.Result())
	assert.False(t, f.NeedsFeedback())

	_, ok := f.Current()
	assert.False(t, ok)
}

func TestFlow_StartUnknown(t *testing.T) {
	f := newTestFlow(t)
	assert.ErrorIs(t, f.Start("nope"), quiz.ErrUnknownQuiz)
	assert.Equal(t, StateList, f.State())
}

func TestFlow_FullRun(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	assert.Equal(t, StateQuiz, f.State())
	assert.Equal(t, "run-1", f.RunID())
	assert.Empty(t, f.Answers())

	idx, total := f.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 3, total)

	answerAll(t, f, 1, 0, 2)

	assert.Equal(t, StateResult, f.State())
	res := f.Result()
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, quiz.AnswerSet{1, 0, 2}, f.Answers())
	assert.Contains(t, res.Prompt, "Question 2 (topic: Quadratic Equations): INCORRECT")
	assert.Equal(t, "Quadratic Equations", res.WeakTopic)
}

func TestFlow_SelectOverwrites(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))

	_, ok := f.Selected()
	assert.False(t, ok)

	require.NoError(t, f.Select(0))
	require.NoError(t, f.Select(2))
	got, ok := f.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, quiz.AnswerSet{2}, f.Answers())
}

func TestFlow_SelectOutOfRange(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	assert.ErrorIs(t, f.Select(3), quiz.ErrAnswerOutOfRange)
	assert.ErrorIs(t, f.Select(-1), quiz.ErrAnswerOutOfRange)
	assert.Empty(t, f.Answers())
}

func TestFlow_ConfirmRequiresSelection(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	assert.ErrorIs(t, f.Confirm(), ErrNoSelection)

	idx, _ := f.Position()
	assert.Equal(t, 0, idx)
}

func TestFlow_ForwardOnly(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	answerAll(t, f, 1)

	idx, _ := f.Position()
	assert.Equal(t, 1, idx)
	_, ok := f.Selected()
	assert.False(t, ok, "next question starts unselected")
	assert.Equal(t, quiz.AnswerSet{1}, f.Answers())
}

func TestFlow_InvalidTransitions(t *testing.T) {
	f := newTestFlow(t)
	assert.ErrorIs(t, f.Select(0), ErrInvalidState)
	assert.ErrorIs(t, f.Confirm(), ErrInvalidState)

	require.NoError(t, f.Start("algebra"))
	assert.ErrorIs(t, f.Start("algebra"), ErrInvalidState)

	answerAll(t, f, 1, 2, 2)
	assert.ErrorIs(t, f.Select(0), ErrInvalidState)
	assert.ErrorIs(t, f.Confirm(), ErrInvalidState)
	assert.ErrorIs(t, f.Start("algebra"), ErrInvalidState)
}

func TestFlow_FeedbackFetchedOnce(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	assert.False(t, f.NeedsFeedback(), "not in result view yet")
	answerAll(t, f, 1, 0, 2)

	require.True(t, f.NeedsFeedback())
	req, ok := f.BeginFeedback()
	require.True(t, ok)
	assert.Equal(t, f.RunID(), req.RunID)
	assert.Equal(t, f.Result().Prompt, req.Prompt)
	assert.True(t, f.FeedbackLoading())

	// Re-renders while in flight must not issue another request.
	for i := 0; i < 5; i++ {
		_, ok := f.BeginFeedback()
		assert.False(t, ok)
	}

	out := feedback.Outcome{Text: "Nice work", Source: feedback.SourceRemote}
	assert.True(t, f.FinishFeedback(req.RunID, out))
	assert.False(t, f.FeedbackLoading())

	got, fetched := f.Feedback()
	assert.True(t, fetched)
	assert.Equal(t, out, got)

	// Nor after it has arrived.
	_, ok = f.BeginFeedback()
	assert.False(t, ok)
	assert.False(t, f.NeedsFeedback())
}

func TestFlow_ResetClearsState(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	answerAll(t, f, 1, 0, 2)
	req, _ := f.BeginFeedback()
	f.FinishFeedback(req.RunID, feedback.Outcome{Text: "x", Source: feedback.SourceRemote})

	f.Reset()

	assert.Equal(t, StateList, f.State())
	assert.Empty(t, f.Answers())
	assert.Empty(t, f.RunID())
	assert.Nil(t, f.Result())
	assert.Nil(t, f.Quiz())
	text, fetched := f.Feedback()
	assert.Empty(t, text.Text)
	assert.False(t, fetched)
	assert.False(t, f.FeedbackLoading())

	require.NoError(t, f.Start("algebra"))
	assert.Empty(t, f.Answers(), "new run starts with an empty answer set")
	assert.Equal(t, "run-2", f.RunID())
}

func TestFlow_ResetFromQuiz(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	answerAll(t, f, 1)
	f.Reset()
	assert.Equal(t, StateList, f.State())
	assert.Empty(t, f.Answers())
}

func TestFlow_StaleFeedbackDropped(t *testing.T) {
	f := newTestFlow(t)
	require.NoError(t, f.Start("algebra"))
	answerAll(t, f, 1, 2, 2)
	stale, ok := f.BeginFeedback()
	require.True(t, ok)

	f.Reset()
	require.NoError(t, f.Start("algebra"))
	answerAll(t, f, 0, 0, 0)

	assert.False(t, f.FinishFeedback(stale.RunID, feedback.Outcome{Text: "old"}))
	assert.True(t, f.NeedsFeedback(), "the new run still needs its own feedback")
	_, fetched := f.Feedback()
	assert.False(t, fetched)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "LIST", StateList.String())
	assert.Equal(t, "QUIZ", StateQuiz.String())
	assert.Equal(t, "RESULT", StateResult.String())
	assert.Equal(t, "State(9)", State(9).String())
}
