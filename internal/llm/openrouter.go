package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterAppURL  = "https://github.com/abhisek/edumentor"
	defaultOpenRouterTitle   = "Edumentor"
)

// OpenRouterProvider is the OpenAI provider pointed at OpenRouter's
// OpenAI-compatible API, with app attribution headers on every call.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	appURL := cfg.AppURL
	if appURL == "" {
		appURL = defaultOpenRouterAppURL
	}
	title := cfg.AppTitle
	if title == "" {
		title = defaultOpenRouterTitle
	}

	client := chatClient(OpenAIConfig{APIKey: cfg.APIKey, BaseURL: baseURL}, map[string]string{
		"HTTP-Referer": appURL,
		"X-Title":      title,
	})
	inner := &OpenAIProvider{client: client, model: cfg.Model}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// headerTransport sets fixed headers on outgoing requests.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		r.Header.Set(k, v)
	}
	return t.base.RoundTrip(r)
}
