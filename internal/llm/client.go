package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/pkg/httpx"
	"github.com/repotutor/repotutor-backend/internal/prompts"
)

const (
	defaultBaseURL        = "https://openrouter.ai/api/v1"
	defaultMaxAttempts    = 3
	defaultAttemptDelay   = 1500 * time.Millisecond
	defaultAttemptTimeout = 60 * time.Second
	maxRetryAfter         = 30 * time.Second
)

// Client calls the OpenRouter chat-completions endpoint.
type Client struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string

	maxAttempts    int
	attemptDelay   time.Duration
	attemptTimeout time.Duration
}

func NewClient(log *logger.Logger) *Client {
	return &Client{
		log:            log.With("service", "OpenRouterClient"),
		httpClient:     &http.Client{},
		baseURL:        defaultBaseURL,
		maxAttempts:    defaultMaxAttempts,
		attemptDelay:   defaultAttemptDelay,
		attemptTimeout: defaultAttemptTimeout,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
	Model    string        `json:"model"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// retryState is the explicit state of the bounded retry loop: the
// attempt number and the last attempt's error. It carries no logging
// concern; the caller decides what to record per transition.
type retryState struct {
	attempt int
	lastErr error
}

func (rs *retryState) exhausted(max int) bool {
	return rs.attempt >= max
}

// Generate sends the prompt pair and returns the model's raw text.
// A missing API key fails immediately without any network attempt.
// Otherwise up to maxAttempts calls are made, a fixed delay apart,
// each with its own timeout; only the last error is classified and
// surfaced.
func (c *Client) Generate(ctx context.Context, pair prompts.PromptPair, model, apiKey string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", &Error{
			Kind:    KindConfig,
			Message: "OpenRouter API key is not configured.",
			Suggestions: []string{
				"Set OPENROUTER_API_KEY or store a key in your profile.",
			},
		}
	}

	state := retryState{}
	for {
		state.attempt++
		content, err := c.attempt(ctx, pair, model, apiKey)
		if err == nil {
			return content, nil
		}
		state.lastErr = err

		if ctx.Err() != nil {
			// Caller went away; don't keep hammering the upstream.
			return "", Classify(err)
		}
		if state.exhausted(c.maxAttempts) {
			classified := Classify(state.lastErr)
			c.log.Error("course generation failed after retries",
				"attempts", state.attempt,
				"kind", string(classified.Kind),
				"error", err.Error(),
			)
			return "", classified
		}

		delay := c.attemptDelay
		var he *upstreamHTTPError
		if errors.As(err, &he) && he.RetryAfter > delay {
			delay = he.RetryAfter
		}
		c.log.Warn("course generation attempt failed, retrying",
			"attempt", state.attempt,
			"max_attempts", c.maxAttempts,
			"delay", delay.String(),
			"error", err.Error(),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", Classify(ctx.Err())
		}
	}
}

func (c *Client) attempt(ctx context.Context, pair prompts.PromptPair, model, apiKey string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	body := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: pair.System},
			{Role: "user", Content: pair.User},
		},
		Model: model,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &upstreamHTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			RetryAfter: httpx.RetryAfterDuration(resp, 0, maxRetryAfter),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("no response content from model")
	}
	return parsed.Choices[0].Message.Content, nil
}
