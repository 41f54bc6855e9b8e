package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Equal keeps rows whose column equals the given value.
	Equal map[string]any
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string

	// AttemptID links a feedback call to the quiz attempt it was made for.
	AttemptID string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
	AttemptID    string    `sql:"attempt_id"`
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string `sql:"model"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// AttemptAnswer is one graded question inside an attempt.
type AttemptAnswer struct {
	Position int    `json:"position"`
	Topic    string `json:"topic"`
	Selected int    `json:"selected"`
	Correct  bool   `json:"correct"`
}

// AttemptEventData captures a completed quiz attempt.
type AttemptEventData struct {
	AttemptID      string
	QuizID         string
	QuizTitle      string
	Score          int
	Total          int
	Tier           string
	Answers        []AttemptAnswer
	StrongTopic    string
	WeakTopic      string
	FeedbackSource string
}

// AttemptEvent is a stored quiz attempt.
type AttemptEvent struct {
	ID             int             `json:"id"`
	Sequence       int64           `json:"sequence"`
	Timestamp      time.Time       `json:"timestamp"`
	AttemptID      string          `json:"attempt_id"`
	QuizID         string          `json:"quiz_id"`
	QuizTitle      string          `json:"quiz_title"`
	Score          int             `json:"score"`
	Total          int             `json:"total"`
	Tier           string          `json:"tier"`
	Answers        []AttemptAnswer `json:"answers"`
	StrongTopic    string          `json:"strong_topic,omitempty"`
	WeakTopic      string          `json:"weak_topic,omitempty"`
	FeedbackSource string          `json:"feedback_source"`
}

// TopicAccuracy is the lifetime accuracy for one topic label.
type TopicAccuracy struct {
	Topic   string `sql:"topic" json:"topic"`
	Asked   int    `sql:"asked" json:"asked"`
	Correct int    `sql:"correct" json:"correct"`
}

// Ratio returns Correct/Asked, or 0 when nothing was asked.
func (t TopicAccuracy) Ratio() float64 {
	if t.Asked == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Asked)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendAttempt records a finished quiz attempt and its graded answers.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)

	// LastSequence returns the sequence of the newest event of any kind, or
	// 0 for an empty store. Pollers pass it back as QueryOpts.After.
	LastSequence(ctx context.Context) (int64, error)

	// TopicAccuracy aggregates graded answers per topic across all attempts.
	TopicAccuracy(ctx context.Context) ([]TopicAccuracy, error)
}
