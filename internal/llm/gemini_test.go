package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveGemini(t *testing.T, status int, body map[string]any, path *string) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path != nil {
			*path = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(t.Context(), GeminiConfig{APIKey: "g-test", Model: "gemini-flash", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func geminiReply(text, finishReason string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finishReason,
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20},
	}
}

func TestGeminiProvider_Generate(t *testing.T) {
	var path string
	p := serveGemini(t, http.StatusOK, geminiReply("Practice factoring.", "STOP"), &path)

	resp, err := p.Generate(t.Context(), Request{
		System:    "You are a study mentor.",
		Messages:  []Message{{Role: RoleUser, Content: "Feedback please."}},
		MaxTokens: 128,
	})
	require.NoError(t, err)
	assert.Equal(t, "Practice factoring.", resp.Text)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.0-flash:generateContent"), path)
}

func TestGeminiProvider_Failures(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		p := serveGemini(t, http.StatusOK, geminiReply("", "MAX_TOKENS"), nil)
		_, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})

	t.Run("rate limited", func(t *testing.T) {
		body := map[string]any{"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}
		p := serveGemini(t, http.StatusTooManyRequests, body, nil)
		_, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})
}

func TestNewGeminiProvider(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err, "an API key is required")

	for name, want := range map[string]string{
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-pro":       "gemini-2.0-pro",
		"gemini-2.5-flash": "gemini-2.5-flash",
	} {
		assert.Equal(t, want, resolveModel(name, geminiModels), name)
	}
}
