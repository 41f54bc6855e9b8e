package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/llm"
	"github.com/abhisek/edumentor/internal/mentor"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    quiz.AnswerSet
		wantErr bool
	}{
		{"indices", "1,0,2", quiz.AnswerSet{1, 0, 2}, false},
		{"letters", "b, a ,C", quiz.AnswerSet{1, 0, 2}, false},
		{"unanswered", "1,-,", quiz.AnswerSet{1, quiz.Unanswered, quiz.Unanswered}, false},
		{"empty", "", quiz.AnswerSet{}, false},
		{"negative", "1,-2", nil, true},
		{"garbage", "1,xy", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswers(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskAnswers(t *testing.T) {
	q, err := quiz.DefaultCatalog().Get("algebra-midterm")
	require.NoError(t, err)

	// "z" is out of range and is asked again; the blank line skips Q2.
	in := strings.NewReader("z\nb\n\nC\n")
	var out bytes.Buffer

	got, err := askAnswers(in, &out, q)
	require.NoError(t, err)
	assert.Equal(t, quiz.AnswerSet{1, quiz.Unanswered, 2}, got)
	assert.Contains(t, out.String(), "Q1. ")
	assert.Contains(t, out.String(), "Enter a letter")
}

func TestAskAnswers_EOFLeavesRestUnanswered(t *testing.T) {
	q, err := quiz.DefaultCatalog().Get("algebra-midterm")
	require.NoError(t, err)

	got, err := askAnswers(strings.NewReader("1\n"), &bytes.Buffer{}, q)
	require.NoError(t, err)
	assert.Equal(t, quiz.AnswerSet{1, quiz.Unanswered, quiz.Unanswered}, got)
}

func TestPrintEvaluation(t *testing.T) {
	catalog := quiz.DefaultCatalog()
	q, err := catalog.Get("algebra-midterm")
	require.NoError(t, err)

	svc := ex.NewService(catalog, feedback.NewRequester(nil), nil)
	eval, err := svc.Evaluate(t.Context(), q.ID, quiz.AnswerSet{1, 0, 2})
	require.NoError(t, err)

	var out bytes.Buffer
	printEvaluation(&out, q, eval)

	s := out.String()
	assert.Contains(t, s, "Score: 2/3")
	assert.Contains(t, s, "✗ Q2")
	assert.Contains(t, s, "Review: Quadratic Equations")
	assert.Contains(t, s, feedback.Fallback)
}

func TestChatLoop(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("Try spaced repetition.").Fail(errors.New("boom"))
	conv := mentor.New(gen, mentor.DefaultMaxTurns)

	in := strings.NewReader("how do I study?\n\n/reset\nagain\n/quit\n")
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&errOut)
	cmd.SetContext(t.Context())

	require.NoError(t, chatLoop(cmd, conv, in, &out))

	s := out.String()
	assert.Contains(t, s, mentor.Greeting)
	assert.Contains(t, s, "mentor> Try spaced repetition.")
	assert.Contains(t, s, "(conversation cleared)")
	assert.Contains(t, s, "mentor> "+mentor.Unavailable)
	assert.Contains(t, errOut.String(), "warning:")
	assert.Equal(t, 2, gen.CallCount())
	assert.Equal(t, 0, conv.Turns())
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "(none)", redact(""))
	assert.Equal(t, "****", redact("abc"))
	assert.Equal(t, "****wxyz", redact("sk-abcdefwxyz"))
}

func TestExamCommands(t *testing.T) {
	t.Setenv("EDUMENTOR_BANK", "")

	t.Run("prompt", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"exam", "prompt", "algebra-midterm", "--answers", "1,0,2"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Algebra Mid-Term")
	})

	t.Run("take offline", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"exam", "take", "algebra-midterm",
			"--answers", "1,2,2", "--offline", "--no-save", "--json"})
		require.NoError(t, rootCmd.Execute())

		var eval ex.Evaluation
		require.NoError(t, json.Unmarshal(out.Bytes(), &eval))
		assert.Equal(t, 3, eval.Result.Score)
		assert.Equal(t, quiz.TierExcellent, eval.Result.Tier)
		assert.Equal(t, feedback.SourceFallback, eval.Feedback.Source)
	})

	t.Run("unknown exam", func(t *testing.T) {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"exam", "prompt", "nope"})
		err := rootCmd.Execute()
		assert.ErrorIs(t, err, quiz.ErrUnknownQuiz)
	})
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, &store.LLMEvent{
		ID:          7,
		Timestamp:   time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		Provider:    "anthropic",
		Model:       "claude-haiku-4-5",
		Purpose:     "quiz-feedback",
		AttemptID:   "run-1",
		InputTokens: 120,
		Success:     true,
		RequestBody: "[user]\nHow did I do?",
	})

	got := out.String()
	for _, want := range []string{"Attempt:   run-1", "Tokens:    120 in / 0 out", "How did I do?", "(not captured)"} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "Error:")
}

func TestPrintEventTable(t *testing.T) {
	var out bytes.Buffer
	printEventTable(&out, []store.LLMEvent{
		{ID: 1, Purpose: "mentor-chat", Model: strings.Repeat("m", 40), Success: false},
	})
	got := out.String()
	assert.Contains(t, got, "mentor-chat")
	assert.Contains(t, got, "✗")
	assert.NotContains(t, got, strings.Repeat("m", 29), "model column is truncated")
}
