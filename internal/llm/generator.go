package llm

import (
	"context"
	"errors"
	"strings"
)

// TextGenerator is the narrow text-in, text-out surface the rest of the
// application talks to. History is the prior conversation, oldest first,
// and may be empty. Failures are reported as *RemoteError.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, history []Message) (string, error)
}

// GeneratorOptions tunes a ProviderGenerator.
type GeneratorOptions struct {
	System      string
	MaxTokens   int
	Temperature float64
}

// ProviderGenerator adapts a Provider to TextGenerator.
type ProviderGenerator struct {
	provider Provider
	opts     GeneratorOptions
}

// NewTextGenerator returns a TextGenerator backed by p.
func NewTextGenerator(p Provider, opts GeneratorOptions) *ProviderGenerator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &ProviderGenerator{provider: p, opts: opts}
}

// GenerateText sends history followed by prompt as a user turn. The reply
// text is returned as the provider produced it.
func (g *ProviderGenerator) GenerateText(ctx context.Context, prompt string, history []Message) (string, error) {
	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})

	resp, err := g.provider.Generate(ctx, Request{
		System:      g.opts.System,
		Messages:    msgs,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	if err != nil {
		return "", &RemoteError{Purpose: PurposeFrom(ctx), Err: err}
	}

	if strings.TrimSpace(resp.Text) == "" {
		return "", &RemoteError{
			Purpose: PurposeFrom(ctx),
			Err:     &ErrInvalidResponse{Err: errors.New("empty text")},
		}
	}
	return resp.Text, nil
}
