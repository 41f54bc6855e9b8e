// Package mentor holds the chat-with-a-tutor conversation: a bounded history
// of user and assistant turns sent through a text generator.
package mentor

import (
	"context"
	"strings"
	"sync"

	"github.com/abhisek/edumentor/internal/llm"
)

// SystemPrompt sets the mentor's role.
const SystemPrompt = `You are Edumentor, a friendly study mentor for school and university students.
Answer questions about their coursework clearly and briefly. Prefer guiding the student
to the answer with hints and short worked steps over giving final answers outright.
If a question is unrelated to studying, gently steer the conversation back.`

// Greeting is the first assistant line shown in a new conversation.
const Greeting = "Hi! I'm your study mentor. Ask me anything about your courses."

// Unavailable is returned as the reply when the generator fails.
const Unavailable = "Sorry, I couldn't reach the mentor service right now. Please try again in a moment."

// Purpose labels mentor calls in the LLM event log.
const Purpose = "mentor-chat"

// DefaultMaxTurns bounds the history sent with each question.
const DefaultMaxTurns = 10

// Conversation is a single chat session. Safe for concurrent use, though
// questions are answered one at a time.
type Conversation struct {
	gen      llm.TextGenerator
	maxTurns int

	mu      sync.Mutex
	history []llm.Message
}

// New creates a Conversation. maxTurns <= 0 uses DefaultMaxTurns.
func New(gen llm.TextGenerator, maxTurns int) *Conversation {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Conversation{gen: gen, maxTurns: maxTurns}
}

// Ask sends text with the prior history and returns the reply. On failure
// the reply is Unavailable, err is the generator's error, and the history
// is left untouched.
func (c *Conversation) Ask(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen == nil {
		return Unavailable, &llm.RemoteError{Purpose: Purpose, Err: &llm.ErrProviderUnavailable{}}
	}

	history := make([]llm.Message, len(c.history))
	copy(history, c.history)

	reply, err := c.gen.GenerateText(llm.WithPurpose(ctx, Purpose), text, history)
	if err != nil {
		return Unavailable, err
	}

	c.history = append(c.history,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	if limit := c.maxTurns * 2; len(c.history) > limit {
		c.history = append([]llm.Message(nil), c.history[len(c.history)-limit:]...)
	}
	return reply, nil
}

// History returns a copy of the retained turns, oldest first.
func (c *Conversation) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Message, len(c.history))
	copy(out, c.history)
	return out
}

// Turns returns the number of retained question/answer exchanges.
func (c *Conversation) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history) / 2
}

// Reset forgets the conversation.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}
