package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "EDUMENTOR_"

// Config selects a provider and carries the settings of every provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one logical request, retries included.
	Timeout time.Duration

	// MaxTokens caps every generated reply.
	MaxTokens int
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible gateways
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for proxies in front of the Gemini API
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string

	// AppURL and AppTitle identify the app on OpenRouter's dashboards.
	AppURL   string
	AppTitle string
}

// RetryConfig shapes the exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// credential points at the key and model fields of one remote provider.
type credential struct {
	provider string
	envName  string // infix of EDUMENTOR_<envName>_API_KEY
	vendor   string // the vendor's own key variable
	key      *string
	model    *string
}

// credentials lists the remote providers in discovery order.
func (c *Config) credentials() []credential {
	return []credential{
		{"gemini", "GEMINI", "GEMINI_API_KEY", &c.Gemini.APIKey, &c.Gemini.Model},
		{"openai", "OPENAI", "OPENAI_API_KEY", &c.OpenAI.APIKey, &c.OpenAI.Model},
		{"anthropic", "ANTHROPIC", "ANTHROPIC_API_KEY", &c.Anthropic.APIKey, &c.Anthropic.Model},
		{"openrouter", "OPENROUTER", "OPENROUTER_API_KEY", &c.OpenRouter.APIKey, &c.OpenRouter.Model},
	}
}

func (c *Config) credential(provider string) (credential, bool) {
	for _, cr := range c.credentials() {
		if cr.provider == provider {
			return cr, true
		}
	}
	return credential{}, false
}

// DefaultConfig returns the Anthropic provider with default models for
// every vendor.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout:   30 * time.Second,
		MaxTokens: 1024,
	}
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays EDUMENTOR_* variables on DefaultConfig. Malformed
// numeric values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LLM_PROVIDER")
	for _, cr := range cfg.credentials() {
		setFromEnv(cr.key, cr.envName+"_API_KEY")
		setFromEnv(cr.model, cr.envName+"_MODEL")
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setFromEnv(&cfg.Gemini.BaseURL, "GEMINI_BASE_URL")

	if d, err := time.ParseDuration(os.Getenv(envPrefix + "LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv(envPrefix + "LLM_MAX_TOKENS")); err == nil && n > 0 {
		cfg.MaxTokens = n
	}
	return cfg
}

// DiscoverConfig selects the first provider whose vendor key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, cr := range cfg.credentials() {
		if k := os.Getenv(cr.vendor); k != "" {
			cfg.Provider = cr.provider
			*cr.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Selected returns the model and API key of the chosen provider. Both are
// empty for the mock provider.
func (c Config) Selected() (model, key string) {
	if cr, ok := c.credential(c.Provider); ok {
		return *cr.model, *cr.key
	}
	return "", ""
}

// Validate reports an unknown provider or a remote provider without a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	cr, ok := c.credential(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *cr.key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", envPrefix, cr.envName, c.Provider)
	}
	return nil
}
