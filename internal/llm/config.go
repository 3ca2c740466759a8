package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string
	// Model is a friendly alias or a raw model id. Empty picks the
	// provider default.
	Model   string
	APIKey  string
	BaseURL string

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig controls exponential backoff.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is used when a Config leaves Retry zero.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

var defaultModels = map[string]string{
	"anthropic":  "claude-haiku",
	"openai":     "gpt-4o-mini",
	"gemini":     "gemini-flash",
	"openrouter": "google/gemini-2.0-flash-exp",
	"mock":       "mock",
}

// keyEnv lists the conventional key variables read when APIKey is empty.
var keyEnv = map[string]string{
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// withDefaults fills the model, API key, timeout and retry policy.
func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.APIKey == "" {
		if env, ok := keyEnv[c.Provider]; ok {
			c.APIKey = os.Getenv(env)
		}
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = DefaultRetry()
	}
	return c
}

// Validate reports a missing API key or an unknown provider.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic", "openai", "gemini", "openrouter":
		if c.APIKey == "" {
			return fmt.Errorf("%s provider needs an API key (set QUIZMASTER_LLM_API_KEY or %s)",
				c.Provider, keyEnv[c.Provider])
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
}

// resolveModel maps a friendly alias to a model id; unknown names pass through.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
