package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptEventColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "quiz_id", "quiz_title",
	"score", "total", "tier", "answers", "strong_topic", "weak_topic",
	"feedback_source",
}

// attemptRow mirrors attempt_events; answers stay encoded until converted.
type attemptRow struct {
	ID             int       `sql:"id"`
	Sequence       int64     `sql:"sequence"`
	Timestamp      time.Time `sql:"timestamp"`
	AttemptID      string    `sql:"attempt_id"`
	QuizID         string    `sql:"quiz_id"`
	QuizTitle      string    `sql:"quiz_title"`
	Score          int       `sql:"score"`
	Total          int       `sql:"total"`
	Tier           string    `sql:"tier"`
	Answers        string    `sql:"answers"`
	StrongTopic    string    `sql:"strong_topic"`
	WeakTopic      string    `sql:"weak_topic"`
	FeedbackSource string    `sql:"feedback_source"`
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	if data.AttemptID == "" {
		return fmt.Errorf("attempt id is required")
	}

	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attempt tx: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert(AttemptEventsTable.Name).
		Columns(attemptEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC(),
			data.AttemptID,
			data.QuizID,
			data.QuizTitle,
			data.Score,
			data.Total,
			data.Tier,
			string(answers),
			data.StrongTopic,
			data.WeakTopic,
			data.FeedbackSource,
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}

	if len(data.Answers) > 0 {
		ins := builder().Insert(AttemptAnswersTable.Name).
			Columns("attempt_id", "position", "topic", "selected", "correct")
		for _, a := range data.Answers {
			ins.Values(data.AttemptID, a.Position, a.Topic, a.Selected, a.Correct)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save attempt answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	b := builder()
	sel := b.Select(attemptEventColumns...).
		From(b.Table(AttemptEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	var rows []attemptRow
	if err := r.scan(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	events := make([]AttemptEvent, 0, len(rows))
	for _, row := range rows {
		ev := AttemptEvent{
			ID:             row.ID,
			Sequence:       row.Sequence,
			Timestamp:      row.Timestamp,
			AttemptID:      row.AttemptID,
			QuizID:         row.QuizID,
			QuizTitle:      row.QuizTitle,
			Score:          row.Score,
			Total:          row.Total,
			Tier:           row.Tier,
			StrongTopic:    row.StrongTopic,
			WeakTopic:      row.WeakTopic,
			FeedbackSource: row.FeedbackSource,
		}
		if row.Answers != "" {
			if err := json.Unmarshal([]byte(row.Answers), &ev.Answers); err != nil {
				return nil, fmt.Errorf("decode answers for attempt %s: %w", row.AttemptID, err)
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *eventRepo) TopicAccuracy(ctx context.Context) ([]TopicAccuracy, error) {
	b := builder()
	sel := b.Select(
		"topic",
		entsql.As(entsql.Count("*"), "asked"),
		entsql.As(entsql.Sum("correct"), "correct"),
	).
		From(b.Table(AttemptAnswersTable.Name)).
		GroupBy("topic").
		OrderBy("topic")

	var stats []TopicAccuracy
	if err := r.scan(ctx, sel, &stats); err != nil {
		return nil, fmt.Errorf("aggregate topic accuracy: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	return r.seq.Last(ctx)
}
