package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

func down() error { return &Error{Kind: KindUnavailable, Err: errors.New("down")} }

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	bad := MockResponse{Err: &Error{Kind: KindInvalidResponse, Err: errors.New("bad")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, false, 1},
		{"transient then success", []MockResponse{{Err: down()}, ok}, false, 2},
		{"all attempts fail", []MockResponse{{Err: down()}, {Err: down()}, {Err: down()}, ok}, true, 3},
		{"truncated not retried", []MockResponse{{Err: &Error{Kind: KindTruncated}}, ok}, true, 1},
		{"invalid retried once", []MockResponse{bad, bad, ok}, true, 2},
		{"plain error retried", []MockResponse{{Err: errors.New("net")}, ok}, false, 2},
		{"rate limit honours retry-after", []MockResponse{{Err: &Error{Kind: KindRateLimited, RetryAfter: time.Millisecond}}, ok}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_CancelledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: down()}, MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroConfigUsesDefaults(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{}).(*retryProvider)
	if p.cfg.MaxAttempts != DefaultRetry().MaxAttempts {
		t.Errorf("max attempts = %d", p.cfg.MaxAttempts)
	}
	if p.Name() != "mock" || p.Model() != "mock" {
		t.Errorf("decorator should delegate Name and Model")
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{InitialWait: time.Second, MaxWait: 2 * time.Second, Multiplier: 10}}
	for attempt := 0; attempt < 4; attempt++ {
		w := r.wait(attempt, down())
		if w > 2400*time.Millisecond {
			t.Errorf("attempt %d: wait %v exceeds cap plus jitter", attempt, w)
		}
	}
}
