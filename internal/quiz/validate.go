package quiz

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a quiz.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidQuiz)
	}
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidQuiz, q.ID)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidQuiz, q.ID, ErrNoQuestions)
	}
	for i, question := range q.Questions {
		if strings.TrimSpace(question.Prompt) == "" {
			return fmt.Errorf("%w: %s: question %d has no prompt", ErrInvalidQuiz, q.ID, i+1)
		}
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: %s: question %d needs at least two options", ErrInvalidQuiz, q.ID, i+1)
		}
		if question.Correct < 0 || question.Correct >= len(question.Options) {
			return fmt.Errorf("%w: %s: question %d correct index %d outside %d options",
				ErrInvalidQuiz, q.ID, i+1, question.Correct, len(question.Options))
		}
	}
	return nil
}

// ValidateAnswers checks that answers fits questions: no more answers than
// questions, and every present index within its question's options.
func ValidateAnswers(questions []Question, answers AnswerSet) error {
	if len(answers) > len(questions) {
		return fmt.Errorf("%w: %d answers for %d questions", ErrTooManyAnswers, len(answers), len(questions))
	}
	for i, a := range answers {
		if a == Unanswered {
			continue
		}
		if a < 0 || a >= len(questions[i].Options) {
			return fmt.Errorf("%w: question %d answer %d, %d options",
				ErrAnswerOutOfRange, i+1, a, len(questions[i].Options))
		}
	}
	return nil
}
