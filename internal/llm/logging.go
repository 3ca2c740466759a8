package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/quizmaster/internal/store"
)

// EventSink stores one record per LLM request. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type loggingProvider struct {
	Provider
	sink   EventSink
	logger *slog.Logger
}

// WithLogging records every request made through p to sink (which may be
// nil) and logs it. Sink failures are logged and never returned.
func WithLogging(p Provider, sink EventSink, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingProvider{Provider: p, sink: sink, logger: logger}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.Name(),
		Model:     l.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	attrs := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(attrs, "err", err)...)
	} else {
		if cost, ok := LookupCost(data.Model); ok {
			attrs = append(attrs, "cost_usd", cost.Cost(resp.Usage))
		}
		l.logger.Debug("llm request", append(attrs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens)...)
	}

	if l.sink != nil {
		if serr := l.sink.AppendLLMRequest(ctx, data); serr != nil {
			l.logger.Warn("failed to record llm request", "err", serr)
		}
	}
	return resp, err
}
