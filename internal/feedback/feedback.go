// Package feedback requests a short coaching note for a finished quiz and
// always produces text: the remote reply, a cached reply, or a fixed
// fallback sentence.
package feedback

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/abhisek/edumentor/internal/llm"
)

// Fallback is shown whenever the remote call fails.
const Fallback = "Excellent effort! Please review the chapters related to your incorrect answers..."

// Purpose labels feedback calls in the LLM event log.
const Purpose = "quiz-feedback"

// Source tells where an Outcome's text came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Outcome is the result of a feedback request.
type Outcome struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Requester turns an analysis prompt into feedback text.
type Requester struct {
	gen   llm.TextGenerator
	cache Cache
	warn  func(format string, args ...any)
}

// Option configures a Requester.
type Option func(*Requester)

// WithCache stores remote replies in c and serves repeats from it.
func WithCache(c Cache) Option {
	return func(r *Requester) { r.cache = c }
}

// WithWarnf replaces the stderr warning sink.
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(r *Requester) { r.warn = fn }
}

// NewRequester creates a Requester. A nil gen always yields the fallback.
func NewRequester(gen llm.TextGenerator, opts ...Option) *Requester {
	r := &Requester{
		gen: gen,
		warn: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request fetches feedback for prompt with an empty history. Failures of
// any kind are absorbed and produce Fallback.
func (r *Requester) Request(ctx context.Context, prompt string) Outcome {
	if r == nil || r.gen == nil {
		return Outcome{Text: Fallback, Source: SourceFallback}
	}

	key := CacheKey(prompt)
	if r.cache != nil {
		text, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.warn("feedback cache read failed: %v", err)
		} else if ok {
			return Outcome{Text: text, Source: SourceCache}
		}
	}

	text, err := r.gen.GenerateText(llm.WithPurpose(ctx, Purpose), prompt, nil)
	if err != nil {
		return Outcome{Text: Fallback, Source: SourceFallback}
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, text); err != nil {
			r.warn("feedback cache write failed: %v", err)
		}
	}
	return Outcome{Text: text, Source: SourceRemote}
}

// CacheKey derives the cache key for a prompt.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "feedback:" + hex.EncodeToString(sum[:])
}
