package source

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/repotutor/repotutor-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestParseGitHubURL(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{name: "https_url", url: "https://github.com/gin-gonic/gin", wantOwner: "gin-gonic", wantRepo: "gin", wantOK: true},
		{name: "trailing_slash", url: "https://github.com/gin-gonic/gin/", wantOwner: "gin-gonic", wantRepo: "gin", wantOK: true},
		{name: "not_github", url: "https://gitlab.com/foo/bar", wantOK: false},
		{name: "missing_repo", url: "https://github.com/gin-gonic", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, ok := parseGitHubURL(tc.url)
			if ok != tc.wantOK {
				t.Fatalf("parseGitHubURL(%q) ok=%v, want %v", tc.url, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if owner != tc.wantOwner || repo != tc.wantRepo {
				t.Fatalf("parseGitHubURL(%q)=(%q,%q), want (%q,%q)", tc.url, owner, repo, tc.wantOwner, tc.wantRepo)
			}
		})
	}
}

func TestRepoFetcherNonGitHubPassthrough(t *testing.T) {
	rf := NewRepoFetcher(testLogger(t), "")
	got, err := rf.Fetch(context.Background(), "https://example.com/some/tool")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "https://example.com/some/tool" {
		t.Fatalf("non-GitHub URL should pass through, got %q", got)
	}
}

func TestRepoFetcherCombinesMetadataAndReadme(t *testing.T) {
	readme := base64.StdEncoding.EncodeToString([]byte("# Gin\nFast HTTP framework"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/gin-gonic/gin":
			w.Write([]byte(`{"name":"gin","description":"HTTP web framework","language":"Go","topics":["http","framework"],"stargazers_count":70000,"default_branch":"master"}`))
		case "/repos/gin-gonic/gin/readme":
			w.Write([]byte(`{"content":"` + readme + `","encoding":"base64"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rf := NewRepoFetcher(testLogger(t), "")
	rf.apiBase = srv.URL

	got, err := rf.Fetch(context.Background(), "https://github.com/gin-gonic/gin")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for _, want := range []string{
		"Repository: gin",
		"Description: HTTP web framework",
		"Primary Language: Go",
		"Topics: http, framework",
		"README Content:\n# Gin",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("result missing %q:\n%s", want, got)
		}
	}
}

func TestRepoFetcherToleratesMetadataFailure(t *testing.T) {
	readme := base64.StdEncoding.EncodeToString([]byte("readme text only"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/widget/readme":
			w.Write([]byte(`{"content":"` + readme + `","encoding":"base64"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	rf := NewRepoFetcher(testLogger(t), "")
	rf.apiBase = srv.URL

	got, err := rf.Fetch(context.Background(), "https://github.com/acme/widget")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(got, "readme text only") {
		t.Fatalf("README should survive metadata failure, got:\n%s", got)
	}
	if strings.Contains(got, "Repository:") {
		t.Fatalf("metadata section should be omitted on failure, got:\n%s", got)
	}
}

func TestRepoFetcherAllFailuresReturnURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rf := NewRepoFetcher(testLogger(t), "")
	rf.apiBase = srv.URL

	got, err := rf.Fetch(context.Background(), "https://github.com/acme/gone")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "https://github.com/acme/gone" {
		t.Fatalf("expected original URL on total failure, got %q", got)
	}
}
