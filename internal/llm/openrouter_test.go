package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       OpenRouterConfig
		wantModel string
		wantErr   bool
	}{
		{
			name:      "default base URL",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"},
			wantModel: "google/gemini-2.0-flash-exp",
		},
		{
			name:      "model ids pass through",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"},
			wantModel: "anthropic/claude-3-haiku",
		},
		{
			name:      "custom base URL",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b", BaseURL: "https://router.example/v1"},
			wantModel: "meta-llama/llama-3-8b",
		},
		{
			name:    "empty API key",
			cfg:     OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, p.ModelID())
		})
	}
}

func TestProviderName(t *testing.T) {
	or, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	oa, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	assert.Equal(t, "openrouter", vendorOf(or))
	assert.Equal(t, "openai", vendorOf(oa))
	assert.Equal(t, "mock", vendorOf(NewMockProvider()))
}

func TestOpenRouter_SendsAttributionHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"google/gemini-2.0-flash-exp",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"Keep going."},"finish_reason":"stop"}],` +
			`"usage":{"prompt_tokens":9,"completion_tokens":2,"total_tokens":11}}`))
	}))
	defer srv.Close()

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:   "sk-or-test",
		Model:    "google/gemini-2.0-flash-exp",
		BaseURL:  srv.URL,
		AppTitle: "Edumentor Test",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "How did I do?"}},
		MaxTokens: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep going.", resp.Text)
	assert.Equal(t, 9, resp.Usage.InputTokens)

	assert.Equal(t, "Edumentor Test", got.Get("X-Title"))
	assert.Equal(t, defaultOpenRouterAppURL, got.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
}
