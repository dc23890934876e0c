package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/prompts"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c := NewClient(log)
	c.baseURL = baseURL
	c.attemptDelay = time.Millisecond
	c.attemptTimeout = time.Second
	return c
}

func pair() prompts.PromptPair {
	return prompts.PromptPair{System: "system", User: "user"}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Generate(context.Background(), pair(), "test-model", "")
	var llmErr *Error
	if !errors.As(err, &llmErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if llmErr.Kind != KindConfig {
		t.Fatalf("kind=%s, want %s", llmErr.Kind, KindConfig)
	}
	if hits != 0 {
		t.Fatalf("missing key must not hit the network, got %d requests", hits)
	}
}

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("bad auth header %q", got)
		}
		w.Write([]byte(`{"id":"gen-1","choices":[{"message":{"role":"assistant","content":"{\"title\":\"T\",\"steps\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	got, err := c.Generate(context.Background(), pair(), "test-model", "sk-test")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(got, `"title"`) {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestGenerateRetriesExactlyThreeTimes(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Generate(context.Background(), pair(), "test-model", "sk-test")
	if hits != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", hits)
	}
	var llmErr *Error
	if !errors.As(err, &llmErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if llmErr.Kind != KindRateLimit {
		t.Fatalf("kind=%s, want %s", llmErr.Kind, KindRateLimit)
	}
	found := false
	for _, s := range llmErr.Suggestions {
		if strings.Contains(strings.ToLower(s), "wait") {
			found = true
		}
	}
	if !found {
		t.Fatalf("rate-limit error should carry a wait suggestion: %v", llmErr.Suggestions)
	}
}

func TestGenerateEmptyChoicesIsFailure(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"id":"gen-1","choices":[]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Generate(context.Background(), pair(), "test-model", "sk-test")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if hits != 3 {
		t.Fatalf("empty choices should be retried, got %d attempts", hits)
	}
}

func TestGenerateRecoversOnSecondAttempt(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	got, err := c.Generate(context.Background(), pair(), "test-model", "sk-test")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "ok" || hits != 2 {
		t.Fatalf("got=%q hits=%d", got, hits)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "context_length", err: errors.New("This model's maximum context length is 8192 tokens"), want: KindContextLength},
		{name: "rate_limit_status", err: &upstreamHTTPError{StatusCode: 429, Body: "slow down"}, want: KindRateLimit},
		{name: "quota_text", err: errors.New("monthly quota exceeded"), want: KindRateLimit},
		{name: "auth_status", err: &upstreamHTTPError{StatusCode: 401, Body: "bad key"}, want: KindAuth},
		{name: "timeout", err: context.DeadlineExceeded, want: KindTimeout},
		{name: "other", err: errors.New("mystery failure"), want: KindUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			if got.Kind != tc.want {
				t.Fatalf("Classify(%v).Kind=%s, want %s", tc.err, got.Kind, tc.want)
			}
			if len(got.Suggestions) == 0 {
				t.Fatal("classified error must carry suggestions")
			}
		})
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data":[{"id":"meta/llama-3","name":"Llama 3","context_length":8192}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 1 || models[0].ID != "meta/llama-3" {
		t.Fatalf("unexpected models: %+v", models)
	}
}
