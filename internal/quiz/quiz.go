// Package quiz holds the exam catalog and the pure grading logic: scoring an
// answer set, breaking results down by topic and building the coaching
// prompt sent to the feedback generator.
package quiz

// Unanswered marks a question with no selected option in an AnswerSet.
const Unanswered = -1

// Quiz is a fixed, ordered set of multiple-choice questions taken in one
// sitting.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Duration  string     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one multiple-choice item. Topic is a free-text label used
// only for grouping feedback, never for scoring.
type Question struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
	Correct int      `json:"correct" yaml:"correct"`
	Topic   string   `json:"topic" yaml:"topic"`
}

// Total returns the number of questions.
func (q *Quiz) Total() int {
	return len(q.Questions)
}

// AnswerSet holds the selected option index per question position.
// Positions past the end of the slice, or holding Unanswered, are
// unanswered.
type AnswerSet []int

// NewAnswerSet returns an all-unanswered set for n questions.
func NewAnswerSet(n int) AnswerSet {
	a := make(AnswerSet, n)
	for i := range a {
		a[i] = Unanswered
	}
	return a
}

// At returns the answer at position i and whether one was given.
func (a AnswerSet) At(i int) (int, bool) {
	if i < 0 || i >= len(a) || a[i] < 0 {
		return Unanswered, false
	}
	return a[i], true
}

// Answered counts positions holding an answer.
func (a AnswerSet) Answered() int {
	n := 0
	for i := range a {
		if _, ok := a.At(i); ok {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	return append(AnswerSet(nil), a...)
}
