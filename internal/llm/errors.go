package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/repotutor/repotutor-backend/internal/pkg/httpx"
)

// ErrorKind categorizes terminal generation failures so the API layer
// can return actionable guidance instead of a raw upstream message.
type ErrorKind string

const (
	KindConfig        ErrorKind = "config_error"
	KindContextLength ErrorKind = "context_length"
	KindRateLimit     ErrorKind = "rate_limit"
	KindAuth          ErrorKind = "auth_error"
	KindTimeout       ErrorKind = "timeout"
	KindUpstream      ErrorKind = "upstream_error"
)

// Error is the structured failure surfaced to callers of Generate.
type Error struct {
	Kind        ErrorKind `json:"type"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// upstreamHTTPError carries the raw status and body of a failed
// chat-completions call. It is classified, never surfaced directly.
// RetryAfter is non-zero when the upstream sent a usable Retry-After.
type upstreamHTTPError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *upstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

func (e *upstreamHTTPError) HTTPStatusCode() int {
	return e.StatusCode
}

// Classify inspects the final attempt's error and produces the one
// structured error the caller sees. Earlier attempts are only logged.
func Classify(err error) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}

	msg := ""
	status := 0
	if err != nil {
		msg = err.Error()
	}
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		status = sc.HTTPStatusCode()
	}
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "context length") || strings.Contains(lower, "context_length") || strings.Contains(lower, "maximum context"):
		return &Error{
			Kind:    KindContextLength,
			Message: "The source content is too large for the selected model.",
			Suggestions: []string{
				"Choose a model with a larger context window.",
				"Point at a smaller repository or trim the llms.txt document.",
			},
		}
	case status == 429 || strings.Contains(lower, "rate limit") || strings.Contains(lower, "quota"):
		return &Error{
			Kind:    KindRateLimit,
			Message: "The model provider is rate limiting requests.",
			Suggestions: []string{
				"Wait a moment and try again.",
				"Switch to a different model.",
			},
		}
	case status == 401 || status == 403 || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key") || strings.Contains(lower, "forbidden"):
		return &Error{
			Kind:    KindAuth,
			Message: "The model provider rejected the API key.",
			Suggestions: []string{
				"Check that your OpenRouter API key is valid.",
				"Regenerate the key and update it in your profile.",
			},
		}
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return &Error{
			Kind:    KindTimeout,
			Message: "The model did not respond in time.",
			Suggestions: []string{
				"Try a faster model.",
				"Reduce the amount of source content.",
			},
		}
	default:
		return &Error{
			Kind:    KindUpstream,
			Message: "Course generation failed: " + msg,
			Suggestions: []string{
				"Try again in a few minutes.",
				"Try a different model.",
			},
		}
	}
}
