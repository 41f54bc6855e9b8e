package quiz

// GeneralTopic labels questions that carry no topic.
const GeneralTopic = "General"

// TopicStat aggregates graded results for one topic label.
type TopicStat struct {
	Topic   string `json:"topic"`
	Asked   int    `json:"asked"`
	Correct int    `json:"correct"`
}

// Accuracy returns Correct/Asked.
func (s TopicStat) Accuracy() float64 {
	if s.Asked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked)
}

// Incorrect returns the number of questions not answered correctly.
func (s TopicStat) Incorrect() int {
	return s.Asked - s.Correct
}

// TopicBreakdown groups results by topic, in order of first appearance.
func TopicBreakdown(results []QuestionResult) []TopicStat {
	var stats []TopicStat
	index := make(map[string]int)
	for _, r := range results {
		topic := r.Topic
		if topic == "" {
			topic = GeneralTopic
		}
		i, ok := index[topic]
		if !ok {
			i = len(stats)
			index[topic] = i
			stats = append(stats, TopicStat{Topic: topic})
		}
		stats[i].Asked++
		if r.IsRight {
			stats[i].Correct++
		}
	}
	return stats
}

// StrongWeak picks the strongest and weakest topics from stats.
//
// The strong topic has the highest accuracy among topics with at least one
// correct answer; the weak topic has the lowest accuracy among topics with
// at least one miss. Ties go to the topic with more questions, then to the
// one that appeared first. Either result is empty when no topic qualifies.
func StrongWeak(stats []TopicStat) (strong, weak string) {
	bestIdx, worstIdx := -1, -1
	for i, s := range stats {
		if s.Correct > 0 && (bestIdx < 0 || beats(s, stats[bestIdx], true)) {
			bestIdx = i
		}
		if s.Incorrect() > 0 && (worstIdx < 0 || beats(s, stats[worstIdx], false)) {
			worstIdx = i
		}
	}
	if bestIdx >= 0 {
		strong = stats[bestIdx].Topic
	}
	if worstIdx >= 0 {
		weak = stats[worstIdx].Topic
	}
	return strong, weak
}

// beats reports whether a should replace the current pick b. Earlier
// entries win full ties because callers scan in appearance order.
func beats(a, b TopicStat, higher bool) bool {
	// Compare a.Correct/a.Asked with b.Correct/b.Asked without floats.
	l, r := a.Correct*b.Asked, b.Correct*a.Asked
	if l != r {
		if higher {
			return l > r
		}
		return l < r
	}
	return a.Asked > b.Asked
}
