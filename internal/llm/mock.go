package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted answer for MockProvider or MockTextGenerator.
// A non-nil Err makes the call fail.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// script is a FIFO of scripted answers shared by the mocks.
type script struct {
	mu      sync.Mutex
	pending []MockResponse
}

func (s *script) add(r ...MockResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, r...)
}

func (s *script) next() (MockResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return MockResponse{}, false
	}
	r := s.pending[0]
	s.pending = s.pending[1:]
	return r, true
}

// MockProvider is a deterministic Provider for tests. Once the script runs
// out every call fails with ErrProviderUnavailable.
type MockProvider struct {
	script

	mu       sync.Mutex
	requests []Request
}

// NewMockProvider creates a MockProvider that answers with responses in
// order.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	m := &MockProvider{}
	m.add(responses...)
	return m
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := m.next()
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case r.Err != nil:
		return nil, r.Err
	}

	usage := r.Usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Text: r.Text, Usage: usage, Model: m.ModelID(), StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.add(resp)
}

// Requests returns a copy of every request received, oldest first.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// MockTextGenerator is a deterministic TextGenerator for tests. Failures are
// wrapped in *RemoteError the way ProviderGenerator reports them.
type MockTextGenerator struct {
	script

	mu    sync.Mutex
	calls []MockTextCall

	// Block, when non-nil, is waited on before answering. Tests use it to
	// hold a request in flight.
	Block chan struct{}
}

// MockTextCall records one GenerateText invocation.
type MockTextCall struct {
	Prompt  string
	History []Message
}

func NewMockTextGenerator(replies ...MockResponse) *MockTextGenerator {
	m := &MockTextGenerator{}
	m.add(replies...)
	return m
}

// Reply queues a successful reply.
func (m *MockTextGenerator) Reply(text string) *MockTextGenerator {
	m.add(MockResponse{Text: text})
	return m
}

// Fail queues a failing reply.
func (m *MockTextGenerator) Fail(err error) *MockTextGenerator {
	m.add(MockResponse{Err: err})
	return m
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string, history []Message) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockTextCall{Prompt: prompt, History: append([]Message(nil), history...)})
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", &RemoteError{Purpose: PurposeFrom(ctx), Err: ctx.Err()}
		}
	}

	r, ok := m.next()
	if !ok {
		return "", &RemoteError{Purpose: PurposeFrom(ctx), Err: &ErrProviderUnavailable{}}
	}
	if r.Err == nil {
		return r.Text, nil
	}
	if re := (*RemoteError)(nil); errors.As(r.Err, &re) {
		return "", r.Err
	}
	return "", &RemoteError{Purpose: PurposeFrom(ctx), Err: r.Err}
}

// Calls returns a copy of the recorded invocations.
func (m *MockTextGenerator) Calls() []MockTextCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockTextCall(nil), m.calls...)
}

func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
