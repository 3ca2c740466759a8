package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}

// New builds the configured provider wrapped as
// caller → timeout → retry → logging → backend, so each attempt is
// recorded separately.
func New(ctx context.Context, cfg Config, sink EventSink, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case "openai":
		base, err = NewOpenAIProvider(cfg)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, sink, logger)
	p = WithRetry(p, cfg.Retry)
	return &timeoutProvider{Provider: p, timeout: cfg.Timeout}, nil
}
