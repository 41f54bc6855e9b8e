package quiz

import (
	"fmt"
	"strings"
)

// FeedbackSystemPrompt frames the coaching reply for the feedback generator.
const FeedbackSystemPrompt = `You are a supportive study mentor on an online learning platform. You write short, specific coaching notes for students who just finished a quiz.`

// BuildFeedbackPrompt formats the analysis request for a finished quiz.
// Output is deterministic: the title, the literal score/total pair and one
// CORRECT or INCORRECT line per question in question order.
func BuildFeedbackPrompt(title string, score, total int, questions []Question, answers AnswerSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quiz: %s\n", title)
	fmt.Fprintf(&b, "Score: %d/%d\n", score, total)

	b.WriteString("\nResults by question:\n")
	for i, q := range questions {
		topic := q.Topic
		if topic == "" {
			topic = GeneralTopic
		}
		verdict := "INCORRECT"
		if a, ok := answers.At(i); ok && a == q.Correct {
			verdict = "CORRECT"
		}
		fmt.Fprintf(&b, "Question %d (topic: %s): %s\n", i+1, topic, verdict)
	}

	b.WriteString(`
Instructions:
Write 2-4 sentences of feedback addressed to the student.
1. Name the topics they handled well.
2. Name the topics to review and suggest one concrete next step for each.
3. Keep the tone encouraging. Do not restate the score or list every question.`)

	return b.String()
}
