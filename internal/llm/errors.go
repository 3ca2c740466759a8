package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies provider failures for retry decisions.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 response.
	KindRateLimited
	// KindInvalidResponse means the reply was not JSON matching the schema.
	KindInvalidResponse
	// KindTruncated means generation stopped at MaxTokens.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is returned by providers for any failed request.
type Error struct {
	Kind       ErrorKind
	RetryAfter time.Duration
	// Content holds the raw reply for invalid or truncated responses.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, or false if err is not an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func unavailable(err error) error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalid(content json.RawMessage, err error) error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: err}
}

// classifyStatus maps an HTTP status from a provider SDK error.
func classifyStatus(status int, err error) error {
	switch {
	case status == 429:
		return &Error{Kind: KindRateLimited, Err: err}
	default:
		return unavailable(err)
	}
}
