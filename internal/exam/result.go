package exam

import "github.com/abhisek/edumentor/internal/quiz"

// Result is the graded outcome of one quiz run.
type Result struct {
	QuizID      string                `json:"quiz_id"`
	QuizTitle   string                `json:"quiz_title"`
	Score       int                   `json:"score"`
	Total       int                   `json:"total"`
	Tier        quiz.Tier             `json:"tier"`
	Questions   []quiz.QuestionResult `json:"questions"`
	Topics      []quiz.TopicStat      `json:"topics"`
	StrongTopic string                `json:"strong_topic,omitempty"`
	WeakTopic   string                `json:"weak_topic,omitempty"`

	// Prompt is the analysis request for the feedback generator. It is
	// never shown to the student.
	Prompt string `json:"-"`
}

// Evaluate grades answers against q.
func Evaluate(q *quiz.Quiz, answers quiz.AnswerSet) *Result {
	score := quiz.ComputeScore(q.Questions, answers)
	total := q.Total()
	graded := quiz.Grade(q.Questions, answers)
	topics := quiz.TopicBreakdown(graded)
	strong, weak := quiz.StrongWeak(topics)

	return &Result{
		QuizID:      q.ID,
		QuizTitle:   q.Title,
		Score:       score,
		Total:       total,
		Tier:        quiz.TierFor(score, total),
		Questions:   graded,
		Topics:      topics,
		StrongTopic: strong,
		WeakTopic:   weak,
		Prompt:      quiz.BuildFeedbackPrompt(q.Title, score, total, q.Questions, answers),
	}
}
