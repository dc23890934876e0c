package source

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repotutor/repotutor-backend/internal/logger"
)

// RepoFetcher turns a GitHub repository URL into a plain-text blob of
// repository metadata plus README content. URLs that do not point at a
// supported host are passed through unchanged.
type RepoFetcher struct {
	log        *logger.Logger
	httpClient *http.Client
	apiBase    string
	token      string
}

func NewRepoFetcher(log *logger.Logger, token string) *RepoFetcher {
	return &RepoFetcher{
		log:        log.With("service", "RepoFetcher"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    "https://api.github.com",
		token:      token,
	}
}

type repoMetadata struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Topics          []string `json:"topics"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	DefaultBranch   string   `json:"default_branch"`
}

type readmePayload struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Fetch issues the metadata and README requests concurrently. Either
// sub-request may fail on its own; the failing portion is simply
// omitted from the result. If nothing could be fetched the original
// URL is returned so the prompt still has something to anchor on.
func (rf *RepoFetcher) Fetch(ctx context.Context, repoURL string) (string, error) {
	owner, repo, ok := parseGitHubURL(repoURL)
	if !ok {
		return repoURL, nil
	}

	var meta *repoMetadata
	var readme string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := rf.fetchMetadata(gctx, owner, repo)
		if err != nil {
			rf.log.Warn("repository metadata fetch failed, omitting", "owner", owner, "repo", repo, "error", err)
			return nil
		}
		meta = m
		return nil
	})
	g.Go(func() error {
		r, err := rf.fetchReadme(gctx, owner, repo)
		if err != nil {
			rf.log.Warn("README fetch failed, omitting", "owner", owner, "repo", repo, "error", err)
			return nil
		}
		readme = r
		return nil
	})
	_ = g.Wait()

	var b strings.Builder
	if meta != nil {
		fmt.Fprintf(&b, "Repository: %s\n", meta.Name)
		fmt.Fprintf(&b, "URL: %s\n", repoURL)
		if meta.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", meta.Description)
		}
		if meta.Language != "" {
			fmt.Fprintf(&b, "Primary Language: %s\n", meta.Language)
		}
		if len(meta.Topics) > 0 {
			fmt.Fprintf(&b, "Topics: %s\n", strings.Join(meta.Topics, ", "))
		}
		if meta.StargazersCount > 0 {
			fmt.Fprintf(&b, "Stars: %d\n", meta.StargazersCount)
		}
		branch := meta.DefaultBranch
		if branch == "" {
			branch = "master"
		}
		fmt.Fprintf(&b, "Default Branch: %s\n\n", branch)
	}
	if readme != "" {
		fmt.Fprintf(&b, "README Content:\n%s", readme)
	}

	if b.Len() == 0 {
		return repoURL, nil
	}
	return b.String(), nil
}

func (rf *RepoFetcher) fetchMetadata(ctx context.Context, owner, repo string) (*repoMetadata, error) {
	raw, err := rf.get(ctx, fmt.Sprintf("%s/repos/%s/%s", rf.apiBase, owner, repo))
	if err != nil {
		return nil, err
	}
	var meta repoMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode repo metadata: %w", err)
	}
	return &meta, nil
}

func (rf *RepoFetcher) fetchReadme(ctx context.Context, owner, repo string) (string, error) {
	raw, err := rf.get(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", rf.apiBase, owner, repo))
	if err != nil {
		return "", err
	}
	var payload readmePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode readme payload: %w", err)
	}
	if payload.Content == "" {
		return "", nil
	}
	// GitHub returns base64 with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode readme content: %w", err)
	}
	return string(decoded), nil
}

func (rf *RepoFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if rf.token != "" {
		req.Header.Set("Authorization", "token "+rf.token)
	}
	resp, err := rf.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseGitHubURL pulls owner and repo out of anything that contains a
// github.com host segment.
func parseGitHubURL(repoURL string) (owner, repo string, ok bool) {
	if !strings.Contains(repoURL, "github.com") {
		return "", "", false
	}
	trimmed := strings.TrimRight(repoURL, "/")
	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		if strings.Contains(seg, "github.com") {
			if i+2 < len(segments) {
				owner = segments[i+1]
				repo = segments[i+2]
			}
			break
		}
	}
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}
