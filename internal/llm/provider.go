package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider sends one request to a language model. Vendor providers are
// wrapped by the timeout, retry and logging decorators in this package.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, which may differ from the model
	// reported in a Response.
	ModelID() string
}

type Request struct {
	System string

	// Messages run oldest first; the model answers the last one.
	Messages []Message

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Response struct {
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates a reply normalized by one of the vendor providers. A
// reply without text is a truncation when the token limit was hit and
// unusable otherwise.
func finish(vendor string, resp *Response) (*Response, error) {
	if strings.TrimSpace(resp.Text) == "" {
		if resp.StopReason == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{}
		}
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no text content in %s response", vendor)}
	}
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	return resp, nil
}
