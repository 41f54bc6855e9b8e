package quiz

import "errors"

var (
	// ErrNoQuestions is returned for a quiz without questions.
	ErrNoQuestions = errors.New("quiz has no questions")

	// ErrTooManyAnswers is returned when an answer set is longer than the
	// question list.
	ErrTooManyAnswers = errors.New("more answers than questions")

	// ErrAnswerOutOfRange is returned when an answer index falls outside its
	// question's options.
	ErrAnswerOutOfRange = errors.New("answer index out of range")

	// ErrUnknownQuiz is returned when a catalog lookup misses.
	ErrUnknownQuiz = errors.New("unknown quiz")

	// ErrDuplicateQuiz is returned when a catalog already holds the ID.
	ErrDuplicateQuiz = errors.New("duplicate quiz id")

	// ErrInvalidQuiz wraps structural problems found by Validate.
	ErrInvalidQuiz = errors.New("invalid quiz")
)
