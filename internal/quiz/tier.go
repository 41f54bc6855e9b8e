package quiz

// Tier buckets a score for the result view.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierNeedsWork Tier = "needs-work"
)

// TierFor maps score/total to a Tier: at least 80% is excellent, at least
// 50% is good.
func TierFor(score, total int) Tier {
	if total <= 0 {
		return TierNeedsWork
	}
	switch pct := score * 100 / total; {
	case pct >= 80:
		return TierExcellent
	case pct >= 50:
		return TierGood
	default:
		return TierNeedsWork
	}
}

// Label returns a short human label for the tier.
func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	default:
		return "Needs work"
	}
}
