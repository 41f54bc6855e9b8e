package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midterm mirrors the built-in algebra exam: correct indices [1, 2, 2].
func midterm() []Question {
	return []Question{
		{Prompt: "q1", Options: []string{"a", "b", "c", "d"}, Correct: 1, Topic: "Linear Equations"},
		{Prompt: "q2", Options: []string{"a", "b", "c", "d"}, Correct: 2, Topic: "Quadratic Equations"},
		{Prompt: "q3", Options: []string{"a", "b", "c", "d"}, Correct: 2, Topic: "Functions"},
	}
}

func TestComputeScore(t *testing.T) {
	qs := midterm()

	tests := []struct {
		name    string
		answers AnswerSet
		want    int
	}{
		{"nil set", nil, 0},
		{"empty set", AnswerSet{}, 0},
		{"all unanswered", NewAnswerSet(3), 0},
		{"all correct", AnswerSet{1, 2, 2}, 3},
		{"one miss", AnswerSet{1, 0, 2}, 2},
		{"short set", AnswerSet{1}, 1},
		{"short set with miss", AnswerSet{0, 2}, 1},
		{"unanswered in the middle", AnswerSet{1, Unanswered, 2}, 2},
		{"all wrong", AnswerSet{0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(qs, tt.answers))
		})
	}
}

func TestComputeScore_BoundedByAnswerCount(t *testing.T) {
	qs := midterm()
	// Every answer set of length <= 3 over options {-1..3}.
	var walk func(prefix AnswerSet)
	walk = func(prefix AnswerSet) {
		score := ComputeScore(qs, prefix)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, len(prefix))

		matches := 0
		for i, a := range prefix {
			if a == qs[i].Correct {
				matches++
			}
		}
		assert.Equal(t, matches, score, "answers %v", prefix)

		if len(prefix) == len(qs) {
			return
		}
		for opt := Unanswered; opt < 4; opt++ {
			walk(append(prefix.Clone(), opt))
		}
	}
	walk(AnswerSet{})
}

func TestGrade(t *testing.T) {
	results := Grade(midterm(), AnswerSet{1, 0})
	require.Len(t, results, 3)

	assert.True(t, results[0].IsRight)
	assert.True(t, results[0].Answered)
	assert.False(t, results[1].IsRight)
	assert.Equal(t, 0, results[1].Selected)
	assert.False(t, results[2].Answered)
	assert.Equal(t, Unanswered, results[2].Selected)
	assert.Equal(t, "Functions", results[2].Topic)
}

func TestValidateAnswers(t *testing.T) {
	qs := midterm()

	assert.NoError(t, ValidateAnswers(qs, nil))
	assert.NoError(t, ValidateAnswers(qs, AnswerSet{1, Unanswered, 3}))
	assert.ErrorIs(t, ValidateAnswers(qs, AnswerSet{1, 2, 2, 0}), ErrTooManyAnswers)
	assert.ErrorIs(t, ValidateAnswers(qs, AnswerSet{4}), ErrAnswerOutOfRange)
	assert.ErrorIs(t, ValidateAnswers(qs, AnswerSet{-2}), ErrAnswerOutOfRange)
}

func TestAnswerSet(t *testing.T) {
	a := NewAnswerSet(3)
	assert.Equal(t, 0, a.Answered())

	a[1] = 2
	v, ok := a.At(1)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = a.At(5)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Answered())

	c := a.Clone()
	c[0] = 1
	assert.Equal(t, Unanswered, a[0])
	assert.Nil(t, AnswerSet(nil).Clone())
}

func TestBuildFeedbackPrompt_Scenario(t *testing.T) {
	qs := midterm()
	answers := AnswerSet{1, 0, 2}
	score := ComputeScore(qs, answers)
	require.Equal(t, 2, score)

	prompt := BuildFeedbackPrompt("Algebra Mid-Term", score, len(qs), qs, answers)

	assert.Contains(t, prompt, "Algebra Mid-Term")
	assert.Contains(t, prompt, "2/3")

	lines := verdictLines(prompt)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], ": CORRECT"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ": INCORRECT"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ": CORRECT"), lines[2])
	assert.Contains(t, lines[1], "Quadratic Equations")
}

func TestBuildFeedbackPrompt_OrderAndDeterminism(t *testing.T) {
	qs := midterm()
	qs[0].Topic = ""

	p1 := BuildFeedbackPrompt("T", 0, 3, qs, nil)
	p2 := BuildFeedbackPrompt("T", 0, 3, qs, nil)
	assert.Equal(t, p1, p2)

	lines := verdictLines(p1)
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Question "+string(rune('1'+i))+" "), line)
		assert.True(t, strings.HasSuffix(line, ": INCORRECT"), line)
	}
	assert.Contains(t, lines[0], GeneralTopic)
	assert.Contains(t, p1, "0/3")
}

// verdictLines returns the per-question lines of a feedback prompt.
func verdictLines(prompt string) []string {
	var out []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Question ") {
			out = append(out, line)
		}
	}
	return out
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score, total int
		want         Tier
	}{
		{3, 3, TierExcellent},
		{4, 5, TierExcellent},
		{2, 3, TierGood},
		{1, 2, TierGood},
		{1, 3, TierNeedsWork},
		{0, 0, TierNeedsWork},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score, tt.total), "%d/%d", tt.score, tt.total)
	}
	assert.Equal(t, "Needs work", TierNeedsWork.Label())
}
