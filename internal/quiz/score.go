package quiz

// ComputeScore counts positions where the answer equals the question's
// correct index. Unanswered positions never count.
func ComputeScore(questions []Question, answers AnswerSet) int {
	score := 0
	for i, q := range questions {
		if a, ok := answers.At(i); ok && a == q.Correct {
			score++
		}
	}
	return score
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	Position int    `json:"position"`
	Topic    string `json:"topic"`
	Selected int    `json:"selected"`
	Correct  int    `json:"correct"`
	Answered bool   `json:"answered"`
	IsRight  bool   `json:"is_correct"`
}

// Grade returns one result per question, in question order.
func Grade(questions []Question, answers AnswerSet) []QuestionResult {
	results := make([]QuestionResult, len(questions))
	for i, q := range questions {
		a, ok := answers.At(i)
		results[i] = QuestionResult{
			Position: i,
			Topic:    q.Topic,
			Selected: a,
			Correct:  q.Correct,
			Answered: ok,
			IsRight:  ok && a == q.Correct,
		}
	}
	return results
}
