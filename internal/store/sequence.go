package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// The sequence row sits outside the ent-declared tables: claiming a number
// needs UPDATE ... RETURNING, which the query builders don't model.
const (
	sequenceDDL  = `CREATE TABLE IF NOT EXISTS global_sequence (id INTEGER PRIMARY KEY CHECK (id = 1), next_val INTEGER NOT NULL DEFAULT 1)`
	sequenceSeed = `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`
	sequenceNext = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
	sequencePeek = `SELECT next_val - 1 FROM global_sequence WHERE id = 1`
)

// sequenceCounter numbers every stored event, across tables, in the order
// it was written. That is what lets an attempt be placed after the
// feedback call made for it.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	for _, stmt := range []string{sequenceDDL, sequenceSeed} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("prepare sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next claims the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	if err := sc.db.QueryRowContext(ctx, sequenceNext).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Last returns the most recently claimed number, or 0 before any event.
func (sc *sequenceCounter) Last(ctx context.Context) (int64, error) {
	var seq int64
	if err := sc.db.QueryRowContext(ctx, sequencePeek).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	return seq, nil
}
